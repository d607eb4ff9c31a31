package tree

import (
	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/treeitem"
)

// Provider answers the tree view's pull queries from the shadow tree
type Provider struct {
	root    *treeitem.Node
	changed host.EventEmitter[*treeitem.Node]
}

// NewProvider creates a provider rooted at the container node
func NewProvider(root *treeitem.Node) *Provider {
	return &Provider{root: root}
}

// GetTreeItem returns the node's current display item. It never re-derives.
func (p *Provider) GetTreeItem(node *treeitem.Node) host.TreeItem {
	return node.Item()
}

// GetChildren returns the children of node, or the top-level items for nil
func (p *Provider) GetChildren(node *treeitem.Node) []*treeitem.Node {
	if node == nil {
		return p.root.GetChildren()
	}
	return node.GetChildren()
}

// OnDidChangeTreeData subscribes to change notifications
func (p *Provider) OnDidChangeTreeData(listener func(*treeitem.Node)) host.Disposable {
	return p.changed.Event(listener)
}

// Refresh notifies the view that node changed. nil, or the container
// itself, asks for a reload from the root.
func (p *Provider) Refresh(node *treeitem.Node) {
	if node != nil && node.IsContainer() {
		node = nil
	}
	p.changed.Fire(node)
}

// Root returns the container node
func (p *Provider) Root() *treeitem.Node {
	return p.root
}
