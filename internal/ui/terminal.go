package ui

import (
	"errors"
	"fmt"

	"github.com/pstuifzand/tui-treeview/internal/host"
)

// ErrViewExists is returned when a live view already uses the id
var ErrViewExists = errors.New("tree view already exists")

// Terminal is the terminal host window. It creates tree views whose item
// commands run through a shared command registry.
type Terminal[T comparable] struct {
	commands *host.Commands
	views    map[string]*TreeView[T]
	order    []string
}

// NewTerminal creates a window dispatching item commands through commands
func NewTerminal[T comparable](commands *host.Commands) *Terminal[T] {
	return &Terminal[T]{
		commands: commands,
		views:    make(map[string]*TreeView[T]),
	}
}

// CreateTreeView creates a view bound to provider
func (t *Terminal[T]) CreateTreeView(viewID string, provider host.TreeDataProvider[T], options host.TreeViewOptions) (host.TreeView[T], error) {
	if existing, ok := t.views[viewID]; ok && !existing.Disposed() {
		return nil, fmt.Errorf("%w: %s", ErrViewExists, viewID)
	}

	tv := NewTreeView(viewID, provider, t.commands, options)
	if _, ok := t.views[viewID]; !ok {
		t.order = append(t.order, viewID)
	}
	t.views[viewID] = tv
	return tv, nil
}

// View returns the live view with the given id, or nil
func (t *Terminal[T]) View(viewID string) *TreeView[T] {
	tv, ok := t.views[viewID]
	if !ok || tv.Disposed() {
		return nil
	}
	return tv
}

// Views returns the live views in creation order
func (t *Terminal[T]) Views() []*TreeView[T] {
	var result []*TreeView[T]
	for _, id := range t.order {
		if tv := t.View(id); tv != nil {
			result = append(result, tv)
		}
	}
	return result
}

// Commands returns the registry item commands run through
func (t *Terminal[T]) Commands() *host.Commands {
	return t.commands
}
