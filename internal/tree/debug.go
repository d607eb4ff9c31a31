package tree

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/treeitem"
)

// DebugEntry is the printable projection of one display item
type DebugEntry struct {
	Depth       int
	ID          string
	Label       string
	Highlights  [][2]int
	Description string
	Icon        []string
	Tooltip     string
	Command     string
	State       string
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DebugEntries lists the display items of every node, depth-first
func DebugEntries(p *Provider) []DebugEntry {
	var entries []DebugEntry
	var visit func(nodes []*treeitem.Node, depth int)
	visit = func(nodes []*treeitem.Node, depth int) {
		for _, node := range nodes {
			entries = append(entries, debugEntry(p.GetTreeItem(node), depth))
			visit(p.GetChildren(node), depth+1)
		}
	}
	visit(p.GetChildren(nil), 0)
	return entries
}

func debugEntry(item host.TreeItem, depth int) DebugEntry {
	entry := DebugEntry{
		Depth:       depth,
		ID:          item.ID,
		Label:       item.Label.Text,
		Highlights:  item.Label.Highlights,
		Description: item.Description,
		State:       item.CollapsibleState.String(),
	}
	if item.IconPath != nil {
		if item.IconPath.IsThemed() {
			entry.Icon = []string{"light=" + item.IconPath.Light.String(), "dark=" + item.IconPath.Dark.String()}
		} else {
			entry.Icon = []string{item.IconPath.URI.String()}
		}
	}
	if item.Tooltip != nil {
		entry.Tooltip = item.Tooltip.Value
	}
	if item.Command != nil {
		entry.Command = item.Command.ID
	}
	return entry
}

// DumpTree writes a spew dump of every display item to w
func DumpTree(w io.Writer, p *Provider) {
	dumpConfig.Fdump(w, DebugEntries(p))
}
