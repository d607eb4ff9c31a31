// Package treeitem holds the shadow nodes that mirror rendered tree item
// elements and derives the display item the tree view shows for each one.
package treeitem

import (
	"errors"
	"fmt"

	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/reconciler"
)

// ErrNotContainer is returned by Clear on a non-container node
var ErrNotContainer = errors.New("node is not a container")

// Variant distinguishes displayable items from the synthetic root
type Variant int

const (
	VariantItem Variant = iota
	VariantContainer
)

// Context is shared by every node of one tree
type Context struct {
	TreeID string
	// Refresh is called after a node's display item was re-derived
	Refresh func(node *Node)
}

// CommandID returns the activation command bound to every item of the tree
func (c *Context) CommandID() string {
	return c.TreeID + ".itemClick"
}

func (c *Context) refresh(node *Node) {
	if c.Refresh != nil {
		c.Refresh(node)
	}
}

// Node is the shadow of one rendered element
type Node struct {
	variant  Variant
	kind     string
	props    model.Props
	children []reconciler.Instance
	item     host.TreeItem
	ctx      *Context
}

// Make materializes a tree item element; it is registered with the renderer
func Make(kind string, props model.Props, ctx *Context) (reconciler.Instance, error) {
	node := &Node{
		variant: VariantItem,
		kind:    kind,
		props:   props,
		ctx:     ctx,
	}
	item, err := Derive(node)
	if err != nil {
		return nil, err
	}
	node.item = item
	return node, nil
}

// NewContainer creates the synthetic root of a tree
func NewContainer(ctx *Context) *Node {
	node := &Node{
		variant: VariantContainer,
		kind:    "root",
		props:   model.Props{Label: model.PlainLabel("root")},
		ctx:     ctx,
	}
	// The root has no icon, so derivation cannot fail
	node.item, _ = Derive(node)
	return node
}

// Variant returns whether the node is an item or the container
func (n *Node) Variant() Variant {
	return n.variant
}

// IsContainer reports whether the node is the synthetic root
func (n *Node) IsContainer() bool {
	return n.variant == VariantContainer
}

// Item returns the current display item without recomputing it
func (n *Node) Item() host.TreeItem {
	return n.item
}

// GetChildren returns the child nodes that are displayable tree items
func (n *Node) GetChildren() []*Node {
	result := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		if node, ok := child.(*Node); ok && node.variant == VariantItem {
			result = append(result, node)
		}
	}
	return result
}

// Kind implements reconciler.Instance
func (n *Node) Kind() string {
	return n.kind
}

// Props implements reconciler.Instance
func (n *Node) Props() model.Props {
	return n.props
}

// SetProps implements reconciler.Instance
func (n *Node) SetProps(props model.Props) {
	n.props = props
}

// Children implements reconciler.Instance
func (n *Node) Children() []reconciler.Instance {
	return n.children
}

// InsertChild implements reconciler.Instance
func (n *Node) InsertChild(child reconciler.Instance, index int) {
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild implements reconciler.Instance
func (n *Node) RemoveChild(child reconciler.Instance) {
	for idx, c := range n.children {
		if c == child {
			n.children = append(n.children[:idx], n.children[idx+1:]...)
			return
		}
	}
}

// Clear removes all children at once; only the container supports it
func (n *Node) Clear() error {
	if n.variant != VariantContainer {
		return ErrNotContainer
	}
	n.children = nil
	return nil
}

// OnChildrenChanged implements reconciler.Instance
func (n *Node) OnChildrenChanged() error {
	return n.reset()
}

// OnFinalizeChildren implements reconciler.Instance
func (n *Node) OnFinalizeChildren() error {
	return n.reset()
}

// OnPropsChanged implements reconciler.Instance
func (n *Node) OnPropsChanged() error {
	return n.reset()
}

func (n *Node) reset() error {
	item, err := Derive(n)
	if err != nil {
		return fmt.Errorf("tree item %q: %w", n.props.Label.Text, err)
	}
	n.item = item
	n.ctx.refresh(n)
	return nil
}

// Select runs the OnSelected callback, if any
func (n *Node) Select() {
	if n.props.OnSelected != nil {
		n.props.OnSelected()
	}
}

// Click runs the OnClick callback, if any
func (n *Node) Click() {
	if n.props.OnClick != nil {
		n.props.OnClick()
	}
}

// SetExpanded runs the OnExpandState callback, if any
func (n *Node) SetExpanded(expanded bool) {
	if n.props.OnExpandState != nil {
		n.props.OnExpandState(expanded)
	}
}

func (n *Node) String() string {
	if n.variant == VariantContainer {
		return "<root>"
	}
	return n.props.Label.Text
}
