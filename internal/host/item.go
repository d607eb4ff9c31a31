// Package host defines the contract of a pull-based tree view widget:
// the display item it renders, the data provider it pulls from, the events
// it raises and the command registry it dispatches activations through.
package host

import (
	"net/url"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// CollapsibleState is the expansion state of a tree item
type CollapsibleState int

const (
	CollapsibleNone CollapsibleState = iota
	CollapsibleCollapsed
	CollapsibleExpanded
)

func (s CollapsibleState) String() string {
	switch s {
	case CollapsibleNone:
		return "none"
	case CollapsibleCollapsed:
		return "collapsed"
	case CollapsibleExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// IconPath is a resolved icon: either URI or the Light/Dark pair is set
type IconPath struct {
	URI   *url.URL
	Light *url.URL
	Dark  *url.URL
}

// IsThemed reports whether the icon has per-theme locators
func (p *IconPath) IsThemed() bool {
	return p != nil && p.URI == nil && (p.Light != nil || p.Dark != nil)
}

// ForTheme returns the locator to show for a light or dark background
func (p *IconPath) ForTheme(dark bool) *url.URL {
	if p == nil {
		return nil
	}
	if p.URI != nil {
		return p.URI
	}
	if dark {
		return p.Dark
	}
	return p.Light
}

// MarkdownString is rich tooltip text
type MarkdownString struct {
	Value string
}

// Command is invoked by the host when an item is activated
type Command struct {
	ID        string
	Title     string
	Arguments []any
}

// TreeItem is the display representation of one entry in the tree view
type TreeItem struct {
	// ID is optional; when empty the host assigns a transient identity
	ID               string
	Label            model.Label
	Description      string
	IconPath         *IconPath
	Tooltip          *MarkdownString
	Command          *Command
	CollapsibleState CollapsibleState
}
