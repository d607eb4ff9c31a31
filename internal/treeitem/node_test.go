package treeitem

import (
	"errors"
	"testing"

	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/reconciler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*Context, *[]*Node) {
	var refreshed []*Node
	ctx := &Context{
		TreeID: "outline",
		Refresh: func(n *Node) {
			refreshed = append(refreshed, n)
		},
	}
	return ctx, &refreshed
}

func makeNode(t *testing.T, ctx *Context, props model.Props) *Node {
	t.Helper()
	inst, err := Make(model.KindTreeItem, props, ctx)
	require.NoError(t, err)
	return inst.(*Node)
}

func TestDeriveCollapsibleState(t *testing.T) {
	ctx, _ := newContext()

	tests := []struct {
		name              string
		children          int
		initiallyExpanded bool
		expected          host.CollapsibleState
	}{
		{"Leaf", 0, false, host.CollapsibleNone},
		{"Leaf ignores initial expansion", 0, true, host.CollapsibleNone},
		{"Parent collapsed", 2, false, host.CollapsibleCollapsed},
		{"Parent expanded", 1, true, host.CollapsibleExpanded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := makeNode(t, ctx, model.Props{
				Label:             model.PlainLabel("parent"),
				InitiallyExpanded: tt.initiallyExpanded,
			})
			for i := 0; i < tt.children; i++ {
				node.InsertChild(makeNode(t, ctx, model.Props{Label: model.PlainLabel("child")}), i)
			}
			require.NoError(t, node.OnFinalizeChildren())

			assert.Equal(t, tt.expected, node.Item().CollapsibleState)
		})
	}
}

func TestDeriveHighlightsPassThrough(t *testing.T) {
	ctx, _ := newContext()
	node := makeNode(t, ctx, model.Props{
		Label: model.Label{Text: "abcdef", Highlights: [][2]int{{1, 3}}},
	})

	item := node.Item()

	assert.Equal(t, "abcdef", item.Label.Text)
	assert.Equal(t, [][2]int{{1, 3}}, item.Label.Highlights)
}

func TestDeriveIconPair(t *testing.T) {
	ctx, _ := newContext()

	themed := makeNode(t, ctx, model.Props{
		Label: model.PlainLabel("themed"),
		Icon:  model.ThemedIcon("a.svg", "b.svg"),
	}).Item()
	require.NotNil(t, themed.IconPath)
	assert.Nil(t, themed.IconPath.URI)
	require.NotNil(t, themed.IconPath.Light)
	require.NotNil(t, themed.IconPath.Dark)
	assert.NotEqual(t, themed.IconPath.Light.String(), themed.IconPath.Dark.String())
	assert.Equal(t, "a.svg", themed.IconPath.Light.Path)
	assert.Equal(t, "b.svg", themed.IconPath.Dark.Path)

	single := makeNode(t, ctx, model.Props{
		Label: model.PlainLabel("single"),
		Icon:  model.IconPath("c.svg"),
	}).Item()
	require.NotNil(t, single.IconPath)
	require.NotNil(t, single.IconPath.URI)
	assert.Equal(t, "file", single.IconPath.URI.Scheme)
	assert.Equal(t, "c.svg", single.IconPath.URI.Path)
	assert.Nil(t, single.IconPath.Light)
	assert.Nil(t, single.IconPath.Dark)

	none := makeNode(t, ctx, model.Props{Label: model.PlainLabel("none")}).Item()
	assert.Nil(t, none.IconPath)
}

func TestDeriveMalformedIconIsFatal(t *testing.T) {
	ctx, _ := newContext()

	_, err := Make(model.KindTreeItem, model.Props{
		Label: model.PlainLabel("bad"),
		Icon:  model.IconPath("%zz"),
	}, ctx)
	assert.True(t, errors.Is(err, ErrMalformedIcon))

	node := makeNode(t, ctx, model.Props{Label: model.PlainLabel("ok")})
	node.SetProps(model.Props{Label: model.PlainLabel("ok"), Icon: model.ThemedIcon("a.svg", "http://[::1")})
	err = node.OnPropsChanged()
	assert.True(t, errors.Is(err, ErrMalformedIcon))
}

func TestParseResource(t *testing.T) {
	u, err := ParseResource("https://example.com/icons/a.svg")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)

	u, err = ParseResource("/usr/share/icons/a.svg")
	require.NoError(t, err)
	assert.Equal(t, "file:///usr/share/icons/a.svg", u.String())

	_, err = ParseResource("https://")
	assert.True(t, errors.Is(err, ErrMalformedIcon))

	_, err = ParseResource(":nope")
	assert.True(t, errors.Is(err, ErrMalformedIcon))
}

func TestDeriveTooltipAndDescription(t *testing.T) {
	ctx, _ := newContext()

	with := makeNode(t, ctx, model.Props{
		Label:       model.PlainLabel("item"),
		Description: "3 items",
		Tooltip:     "**bold**",
	}).Item()
	require.NotNil(t, with.Tooltip)
	assert.Equal(t, "**bold**", with.Tooltip.Value)
	assert.Equal(t, "3 items", with.Description)

	without := makeNode(t, ctx, model.Props{Label: model.PlainLabel("item")}).Item()
	assert.Nil(t, without.Tooltip)
	assert.Equal(t, "", without.Description)
}

func TestDeriveCommandAndIdentity(t *testing.T) {
	ctx, _ := newContext()

	keyed := makeNode(t, ctx, model.Props{Key: "k1", Label: model.PlainLabel("keyed")})
	item := keyed.Item()
	require.NotNil(t, item.Command)
	assert.Equal(t, "outline.itemClick", item.Command.ID)
	require.Len(t, item.Command.Arguments, 1)
	assert.Same(t, keyed, item.Command.Arguments[0])
	assert.Equal(t, "k1", item.ID)

	unkeyed := makeNode(t, ctx, model.Props{Label: model.PlainLabel("unkeyed")})
	assert.Equal(t, "", unkeyed.Item().ID)
}

func TestItemReadIsIdempotent(t *testing.T) {
	ctx, _ := newContext()
	node := makeNode(t, ctx, model.Props{Label: model.PlainLabel("item"), Icon: model.IconPath("c.svg")})

	assert.Equal(t, node.Item(), node.Item())
}

func TestHooksRefreshOnlyTheNode(t *testing.T) {
	ctx, refreshed := newContext()
	parent := makeNode(t, ctx, model.Props{Label: model.PlainLabel("parent")})
	child := makeNode(t, ctx, model.Props{Label: model.PlainLabel("child")})
	*refreshed = nil

	parent.InsertChild(child, 0)
	require.NoError(t, parent.OnChildrenChanged())
	assert.Equal(t, []*Node{parent}, *refreshed)
	assert.Equal(t, host.CollapsibleCollapsed, parent.Item().CollapsibleState)

	*refreshed = nil
	child.SetProps(model.Props{Label: model.PlainLabel("renamed")})
	require.NoError(t, child.OnPropsChanged())
	assert.Equal(t, []*Node{child}, *refreshed)
	assert.Equal(t, "renamed", child.Item().Label.Text)

	*refreshed = nil
	parent.RemoveChild(child)
	require.NoError(t, parent.OnFinalizeChildren())
	assert.Equal(t, []*Node{parent}, *refreshed)
	assert.Equal(t, host.CollapsibleNone, parent.Item().CollapsibleState)
}

type bookkeeping struct {
	reconciler.Instance
}

func TestGetChildrenFiltersNonItems(t *testing.T) {
	ctx, _ := newContext()
	parent := makeNode(t, ctx, model.Props{Label: model.PlainLabel("parent")})
	a := makeNode(t, ctx, model.Props{Label: model.PlainLabel("a")})
	b := makeNode(t, ctx, model.Props{Label: model.PlainLabel("b")})

	parent.InsertChild(a, 0)
	parent.InsertChild(bookkeeping{}, 1)
	parent.InsertChild(b, 2)
	require.NoError(t, parent.OnChildrenChanged())

	assert.Equal(t, []*Node{a, b}, parent.GetChildren())
	assert.Len(t, parent.Children(), 3)
}

func TestContainerClear(t *testing.T) {
	ctx, _ := newContext()
	container := NewContainer(ctx)
	assert.True(t, container.IsContainer())
	assert.Equal(t, VariantContainer, container.Variant())

	container.InsertChild(makeNode(t, ctx, model.Props{Label: model.PlainLabel("a")}), 0)
	container.InsertChild(makeNode(t, ctx, model.Props{Label: model.PlainLabel("b")}), 1)
	require.Len(t, container.GetChildren(), 2)

	require.NoError(t, container.Clear())
	assert.Empty(t, container.GetChildren())

	leaf := makeNode(t, ctx, model.Props{Label: model.PlainLabel("leaf")})
	assert.True(t, errors.Is(leaf.Clear(), ErrNotContainer))
}

func TestCallbacksAbsentAreNoOps(t *testing.T) {
	ctx, _ := newContext()
	node := makeNode(t, ctx, model.Props{Label: model.PlainLabel("quiet")})

	assert.NotPanics(t, func() {
		node.Select()
		node.Click()
		node.SetExpanded(true)
	})

	var expanded []bool
	clicked := 0
	node.SetProps(model.Props{
		Label:         model.PlainLabel("loud"),
		OnClick:       func() { clicked++ },
		OnExpandState: func(e bool) { expanded = append(expanded, e) },
	})
	node.Click()
	node.SetExpanded(false)
	node.SetExpanded(true)

	assert.Equal(t, 1, clicked)
	assert.Equal(t, []bool{false, true}, expanded)
}

func TestNilRefreshIsSafe(t *testing.T) {
	ctx := &Context{TreeID: "t"}
	node := makeNode(t, ctx, model.Props{Label: model.PlainLabel("x")})

	assert.NoError(t, node.OnPropsChanged())
}
