// Package model contains the declarative descriptors for tree items
package model

// Element kinds understood by the tree renderer
const (
	KindTreeItem = "TreeItem"
	KindFragment = "Fragment"
)

// Label is the text of a tree item with optional highlighted ranges.
// Each range is a half-open [start, end) offset pair into Text.
type Label struct {
	Text       string
	Highlights [][2]int
}

// PlainLabel creates a label without highlights
func PlainLabel(text string) Label {
	return Label{Text: text}
}

// Icon is either a single resource locator (Path) or a light/dark pair
type Icon struct {
	Path  string
	Light string
	Dark  string
}

// IconPath creates an unthemed icon
func IconPath(path string) Icon {
	return Icon{Path: path}
}

// ThemedIcon creates an icon with one locator per theme
func ThemedIcon(light, dark string) Icon {
	return Icon{Light: light, Dark: dark}
}

// IsZero reports whether no icon is set
func (i Icon) IsZero() bool {
	return i.Path == "" && i.Light == "" && i.Dark == ""
}

// IsThemed reports whether the icon is a light/dark pair
func (i Icon) IsThemed() bool {
	return i.Path == "" && (i.Light != "" || i.Dark != "")
}

// Props describes the content and behavior of one tree item.
// Empty strings and nil callbacks mean the feature is absent.
type Props struct {
	Key               string
	Label             Label
	Description       string
	Icon              Icon
	Tooltip           string
	InitiallyExpanded bool

	OnClick       func()
	OnSelected    func()
	OnExpandState func(expanded bool)
}

// SameDisplay reports whether both props carry the same data fields.
// Callbacks are not compared.
func (p Props) SameDisplay(other Props) bool {
	if p.Key != other.Key ||
		p.Label.Text != other.Label.Text ||
		p.Description != other.Description ||
		p.Icon != other.Icon ||
		p.Tooltip != other.Tooltip ||
		p.InitiallyExpanded != other.InitiallyExpanded {
		return false
	}
	if len(p.Label.Highlights) != len(other.Label.Highlights) {
		return false
	}
	for i, r := range p.Label.Highlights {
		if r != other.Label.Highlights[i] {
			return false
		}
	}
	return true
}

// Element is an immutable descriptor of one node in the declarative tree
type Element struct {
	Kind     string
	Props    Props
	Children []*Element
}

// TreeItem creates a tree item descriptor
func TreeItem(props Props, children ...*Element) *Element {
	return &Element{
		Kind:     KindTreeItem,
		Props:    props,
		Children: children,
	}
}

// Fragment groups children without producing a node of its own
func Fragment(children ...*Element) *Element {
	return &Element{
		Kind:     KindFragment,
		Children: children,
	}
}

// Key returns the reconciliation key of the element (empty if none)
func (e *Element) Key() string {
	if e == nil {
		return ""
	}
	return e.Props.Key
}

// Flatten expands fragments in place, returning the concrete elements
func Flatten(elements []*Element) []*Element {
	result := make([]*Element, 0, len(elements))
	for _, el := range elements {
		if el == nil {
			continue
		}
		if el.Kind == KindFragment {
			result = append(result, Flatten(el.Children)...)
			continue
		}
		result = append(result, el)
	}
	return result
}

// Walk visits the element and its descendants depth-first
func Walk(el *Element, visit func(el *Element, depth int)) {
	walk(el, 0, visit)
}

func walk(el *Element, depth int, visit func(el *Element, depth int)) {
	if el == nil {
		return
	}
	visit(el, depth)
	for _, child := range el.Children {
		walk(child, depth+1, visit)
	}
}
