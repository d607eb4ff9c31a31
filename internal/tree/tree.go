// Package tree mounts a declarative element tree onto a host tree view.
// It owns the data provider the view pulls from and forwards the view's
// events to the callbacks of the rendered items.
package tree

import (
	"fmt"
	"log"

	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/reconciler"
	"github.com/pstuifzand/tui-treeview/internal/treeitem"
)

// Result is a mounted tree
type Result struct {
	TreeView host.TreeView[*treeitem.Node]
	Provider *Provider
	// Disposable releases the view, its event subscriptions and the
	// item command together
	Disposable host.Disposable

	renderer *reconciler.Renderer[*treeitem.Context]
}

// GetTree renders root and mounts it on a new tree view created by win.
// The item activation command "<treeID>.itemClick" is registered in
// commands for the lifetime of the result.
func GetTree(
	win host.Window[*treeitem.Node],
	commands *host.Commands,
	treeID string,
	root *model.Element,
	options host.TreeViewOptions,
) (*Result, error) {
	// Notifications are dropped until the view exists
	ctx := &treeitem.Context{
		TreeID:  treeID,
		Refresh: func(*treeitem.Node) {},
	}

	setup := reconciler.SetupElements(ctx, map[string]reconciler.MaterializeFunc[*treeitem.Context]{
		model.KindTreeItem: treeitem.Make,
	})
	container := treeitem.NewContainer(ctx)
	renderer := reconciler.New(root, setup, container)
	provider := NewProvider(container)

	if err := renderer.Render(); err != nil {
		return nil, fmt.Errorf("failed to render tree %s: %w", treeID, err)
	}

	view, err := win.CreateTreeView(treeID, provider, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree view %s: %w", treeID, err)
	}

	ctx.Refresh = provider.Refresh

	events, err := connectEvents(commands, ctx.CommandID(), view)
	if err != nil {
		view.Dispose()
		return nil, err
	}

	provider.Refresh(nil)

	return &Result{
		TreeView:   view,
		Provider:   provider,
		Disposable: host.CombineDisposables(view, events),
		renderer:   renderer,
	}, nil
}

// Update re-renders the tree from a new root element
func (r *Result) Update(root *model.Element) error {
	if err := r.renderer.Update(root); err != nil {
		return fmt.Errorf("failed to update tree: %w", err)
	}
	return nil
}

// Rebuild discards every node and renders root from scratch
func (r *Result) Rebuild(root *model.Element) error {
	if err := r.renderer.Rebuild(root); err != nil {
		return fmt.Errorf("failed to rebuild tree: %w", err)
	}
	return nil
}

// Root returns the element tree rendered last
func (r *Result) Root() *model.Element {
	return r.renderer.Root()
}

func connectEvents(commands *host.Commands, commandID string, view host.TreeView[*treeitem.Node]) (host.Disposable, error) {
	selected := make(map[*treeitem.Node]bool)

	selection := view.OnDidChangeSelection(func(e host.SelectionChangeEvent[*treeitem.Node]) {
		next := make(map[*treeitem.Node]bool, len(e.Selection))
		for _, node := range e.Selection {
			if node == nil {
				continue
			}
			next[node] = true
			if !selected[node] {
				node.Select()
			}
		}
		selected = next
	})

	collapse := view.OnDidCollapseElement(func(e host.ExpansionEvent[*treeitem.Node]) {
		if e.Element != nil {
			e.Element.SetExpanded(false)
		}
	})

	expand := view.OnDidExpandElement(func(e host.ExpansionEvent[*treeitem.Node]) {
		if e.Element != nil {
			e.Element.SetExpanded(true)
		}
	})

	command, err := commands.Register(commandID, func(args ...any) error {
		if len(args) == 0 {
			return nil
		}
		node, ok := args[0].(*treeitem.Node)
		if !ok || node == nil {
			log.Printf("%s: ignoring argument of type %T", commandID, args[0])
			return nil
		}
		node.Click()
		node.Select()
		return nil
	})
	if err != nil {
		selection.Dispose()
		collapse.Dispose()
		expand.Dispose()
		return nil, fmt.Errorf("failed to register item command: %w", err)
	}

	return host.CombineDisposables(selection, collapse, expand, command), nil
}
