package tree

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/treeitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	selection host.EventEmitter[host.SelectionChangeEvent[*treeitem.Node]]
	expand    host.EventEmitter[host.ExpansionEvent[*treeitem.Node]]
	collapse  host.EventEmitter[host.ExpansionEvent[*treeitem.Node]]
	selected  []*treeitem.Node
	disposed  bool
}

func (v *fakeView) OnDidChangeSelection(fn func(host.SelectionChangeEvent[*treeitem.Node])) host.Disposable {
	return v.selection.Event(fn)
}

func (v *fakeView) OnDidExpandElement(fn func(host.ExpansionEvent[*treeitem.Node])) host.Disposable {
	return v.expand.Event(fn)
}

func (v *fakeView) OnDidCollapseElement(fn func(host.ExpansionEvent[*treeitem.Node])) host.Disposable {
	return v.collapse.Event(fn)
}

func (v *fakeView) Selection() []*treeitem.Node {
	return v.selected
}

func (v *fakeView) Dispose() {
	v.disposed = true
}

func (v *fakeView) selectNodes(nodes ...*treeitem.Node) {
	v.selected = nodes
	v.selection.Fire(host.SelectionChangeEvent[*treeitem.Node]{Selection: nodes})
}

// fakeWindow creates fakeViews and records every change notification
type fakeWindow struct {
	view     *fakeView
	provider host.TreeDataProvider[*treeitem.Node]
	options  host.TreeViewOptions
	viewID   string
	notified []*treeitem.Node
	// items the provider returned on creation, to check nothing fired early
	createdWith int
}

func (w *fakeWindow) CreateTreeView(viewID string, provider host.TreeDataProvider[*treeitem.Node], options host.TreeViewOptions) (host.TreeView[*treeitem.Node], error) {
	w.viewID = viewID
	w.provider = provider
	w.options = options
	w.createdWith = len(provider.GetChildren(nil))
	provider.OnDidChangeTreeData(func(n *treeitem.Node) {
		w.notified = append(w.notified, n)
	})
	w.view = &fakeView{}
	return w.view, nil
}

func (w *fakeWindow) reset() {
	w.notified = nil
}

func (w *fakeWindow) count(n *treeitem.Node) int {
	count := 0
	for _, got := range w.notified {
		if got == n {
			count++
		}
	}
	return count
}

func leaf(label string) *model.Element {
	return model.TreeItem(model.Props{Label: model.PlainLabel(label)})
}

func mount(t *testing.T, root *model.Element) (*Result, *fakeWindow, *host.Commands) {
	t.Helper()
	win := &fakeWindow{}
	commands := host.NewCommands()
	result, err := GetTree(win, commands, "outline", root, host.TreeViewOptions{ShowCollapseAll: host.Bool(true)})
	require.NoError(t, err)
	return result, win, commands
}

func TestGetTreeMountSequence(t *testing.T) {
	result, win, commands := mount(t, model.TreeItem(model.Props{Label: model.PlainLabel("root")}, leaf("a")))

	assert.Equal(t, "outline", win.viewID)
	assert.Equal(t, 1, win.createdWith)
	assert.True(t, host.BoolValue(win.options.ShowCollapseAll))
	assert.True(t, commands.Has("outline.itemClick"))
	// only the whole-tree refresh after wiring
	assert.Equal(t, []*treeitem.Node{nil}, win.notified)
	assert.Same(t, win.view, result.TreeView)
}

func TestEndToEndGrandchild(t *testing.T) {
	result, win, _ := mount(t, model.TreeItem(model.Props{Label: model.PlainLabel("root")},
		leaf("first"),
		leaf("second"),
	))
	p := result.Provider

	top := p.GetChildren(nil)
	require.Len(t, top, 1)
	root := top[0]
	rootItem := p.GetTreeItem(root)

	children := p.GetChildren(root)
	require.Len(t, children, 2)
	assert.Equal(t, "first", p.GetTreeItem(children[0]).Label.Text)
	assert.Equal(t, "second", p.GetTreeItem(children[1]).Label.Text)
	for _, child := range children {
		assert.Equal(t, host.CollapsibleNone, p.GetTreeItem(child).CollapsibleState)
	}
	win.reset()

	require.NoError(t, result.Update(model.TreeItem(model.Props{Label: model.PlainLabel("root")},
		model.TreeItem(model.Props{Label: model.PlainLabel("first")}, leaf("grandchild")),
		leaf("second"),
	)))

	first := p.GetChildren(root)[0]
	assert.Same(t, children[0], first)
	assert.GreaterOrEqual(t, win.count(first), 1)
	assert.Equal(t, host.CollapsibleCollapsed, p.GetTreeItem(first).CollapsibleState)
	assert.Equal(t, 0, win.count(root))
	assert.Equal(t, 0, win.count(nil))
	assert.Equal(t, rootItem, p.GetTreeItem(root))
}

func TestPropsOnlyChangeNotifiesOnce(t *testing.T) {
	result, win, _ := mount(t, model.TreeItem(model.Props{Label: model.PlainLabel("root")},
		model.TreeItem(model.Props{Label: model.PlainLabel("mid")}, leaf("leaf")),
	))
	p := result.Provider
	root := p.GetChildren(nil)[0]
	mid := p.GetChildren(root)[0]
	win.reset()

	require.NoError(t, result.Update(model.TreeItem(model.Props{Label: model.PlainLabel("root")},
		model.TreeItem(model.Props{Label: model.PlainLabel("mid"), Description: "changed"}, leaf("leaf")),
	)))

	assert.Equal(t, []*treeitem.Node{mid}, win.notified)
	assert.Equal(t, "changed", p.GetTreeItem(mid).Description)
}

func TestInitiallyExpandedDerivation(t *testing.T) {
	result, _, _ := mount(t, model.TreeItem(model.Props{Label: model.PlainLabel("root"), InitiallyExpanded: true},
		leaf("a"),
	))
	p := result.Provider
	root := p.GetChildren(nil)[0]

	assert.Equal(t, host.CollapsibleExpanded, p.GetTreeItem(root).CollapsibleState)
}

func TestGetTreeItemIsIdempotent(t *testing.T) {
	result, _, _ := mount(t, model.TreeItem(model.Props{
		Label:   model.Label{Text: "abcdef", Highlights: [][2]int{{1, 3}}},
		Icon:    model.ThemedIcon("a.svg", "b.svg"),
		Tooltip: "tip",
	}))
	p := result.Provider
	node := p.GetChildren(nil)[0]

	assert.Equal(t, p.GetTreeItem(node), p.GetTreeItem(node))
}

func TestCommandRoundTrip(t *testing.T) {
	var selected []string
	var clicked []string
	item := func(label string) *model.Element {
		return model.TreeItem(model.Props{
			Label:      model.PlainLabel(label),
			OnSelected: func() { selected = append(selected, label) },
			OnClick:    func() { clicked = append(clicked, label) },
		})
	}
	result, _, commands := mount(t, model.Fragment(item("a"), item("b"), item("c")))
	nodes := result.Provider.GetChildren(nil)
	require.Len(t, nodes, 3)

	cmd := result.Provider.GetTreeItem(nodes[1]).Command
	require.NotNil(t, cmd)
	require.NoError(t, commands.Execute(cmd.ID, cmd.Arguments...))

	assert.Equal(t, []string{"b"}, selected)
	assert.Equal(t, []string{"b"}, clicked)

	// non-node arguments are ignored
	require.NoError(t, commands.Execute(cmd.ID, "not a node"))
	require.NoError(t, commands.Execute(cmd.ID))
	assert.Equal(t, []string{"b"}, selected)
}

func TestSelectionExpandCollapseEvents(t *testing.T) {
	var selected []string
	var expansion []bool
	item := func(label string) *model.Element {
		return model.TreeItem(model.Props{
			Label:         model.PlainLabel(label),
			OnSelected:    func() { selected = append(selected, label) },
			OnExpandState: func(e bool) { expansion = append(expansion, e) },
		})
	}
	result, win, _ := mount(t, model.Fragment(item("a"), item("b"), leaf("quiet")))
	nodes := result.Provider.GetChildren(nil)

	win.view.selectNodes(nodes[0])
	win.view.selectNodes(nodes[0], nodes[1])
	win.view.selectNodes(nodes[2])
	assert.Equal(t, []string{"a", "b"}, selected)

	win.view.collapse.Fire(host.ExpansionEvent[*treeitem.Node]{Element: nodes[0]})
	win.view.expand.Fire(host.ExpansionEvent[*treeitem.Node]{Element: nodes[0]})
	win.view.expand.Fire(host.ExpansionEvent[*treeitem.Node]{Element: nodes[2]})
	assert.Equal(t, []bool{false, true}, expansion)
}

func TestCallbacksFollowRerender(t *testing.T) {
	var got []int
	render := func(version int) *model.Element {
		return model.TreeItem(model.Props{
			Key:        "item",
			Label:      model.PlainLabel("item"),
			OnSelected: func() { got = append(got, version) },
		})
	}
	result, win, commands := mount(t, render(1))
	require.NoError(t, result.Update(render(2)))
	node := result.Provider.GetChildren(nil)[0]

	cmd := result.Provider.GetTreeItem(node).Command
	require.NoError(t, commands.Execute(cmd.ID, cmd.Arguments...))
	win.view.selectNodes(node)

	assert.Equal(t, []int{2, 2}, got)
}

func TestTeardownReleasesEverything(t *testing.T) {
	result, win, commands := mount(t, leaf("a"))

	result.Disposable.Dispose()

	assert.True(t, win.view.disposed)
	assert.False(t, commands.Has("outline.itemClick"))
	assert.Equal(t, 0, win.view.selection.ListenerCount())
	assert.Equal(t, 0, win.view.expand.ListenerCount())
	assert.Equal(t, 0, win.view.collapse.ListenerCount())

	// the same id can be mounted again
	_, err := GetTree(win, commands, "outline", leaf("a"), host.TreeViewOptions{})
	assert.NoError(t, err)
}

func TestDuplicateTreeIDFails(t *testing.T) {
	_, win, commands := mount(t, leaf("a"))
	first := win.view

	_, err := GetTree(win, commands, "outline", leaf("b"), host.TreeViewOptions{})

	assert.True(t, errors.Is(err, host.ErrCommandExists))
	assert.False(t, first.disposed)
	assert.True(t, win.view.disposed)
}

func TestMalformedIconFailsMount(t *testing.T) {
	win := &fakeWindow{}
	_, err := GetTree(win, host.NewCommands(), "outline", model.TreeItem(model.Props{
		Label: model.PlainLabel("bad"),
		Icon:  model.IconPath("%zz"),
	}), host.TreeViewOptions{})

	assert.True(t, errors.Is(err, treeitem.ErrMalformedIcon))
	assert.Nil(t, win.view)
}

func TestRebuildReplacesNodes(t *testing.T) {
	result, win, _ := mount(t, model.Fragment(leaf("a"), leaf("b")))
	before := result.Provider.GetChildren(nil)
	win.reset()

	require.NoError(t, result.Rebuild(model.Fragment(leaf("a"), leaf("b"))))

	after := result.Provider.GetChildren(nil)
	require.Len(t, after, 2)
	assert.NotSame(t, before[0], after[0])
	// container changes are forwarded as whole-tree refreshes
	assert.Contains(t, win.notified, (*treeitem.Node)(nil))
	assert.Equal(t, 2, len(result.Root().Children))
}

func keyedLeaf(label string) *model.Element {
	return model.TreeItem(model.Props{Key: label, Label: model.PlainLabel(label)})
}

func childLabels(p *Provider, node *treeitem.Node) []string {
	var labels []string
	for _, child := range p.GetChildren(node) {
		labels = append(labels, p.GetTreeItem(child).Label.Text)
	}
	return labels
}

func TestUpdateDropsLeadingSiblings(t *testing.T) {
	rootProps := model.Props{Key: "root", Label: model.PlainLabel("root"), InitiallyExpanded: true}
	result, win, _ := mount(t, model.TreeItem(rootProps, keyedLeaf("A"), keyedLeaf("B"), keyedLeaf("C")))
	p := result.Provider
	root := p.GetChildren(nil)[0]
	c := p.GetChildren(root)[2]
	win.reset()

	require.NoError(t, result.Update(model.TreeItem(rootProps, keyedLeaf("C"))))

	assert.Equal(t, []string{"C"}, childLabels(p, root))
	assert.Same(t, c, p.GetChildren(root)[0])
	assert.Equal(t, host.CollapsibleExpanded, p.GetTreeItem(root).CollapsibleState)
	assert.Positive(t, win.count(root))
}

func TestDumpTree(t *testing.T) {
	result, _, _ := mount(t, model.TreeItem(model.Props{
		Key:     "k",
		Label:   model.PlainLabel("root"),
		Icon:    model.ThemedIcon("a.svg", "b.svg"),
		Tooltip: "tip",
	}, leaf("child")))

	entries := DebugEntries(result.Provider)
	require.Len(t, entries, 2)
	assert.Equal(t, "root", entries[0].Label)
	assert.Equal(t, "collapsed", entries[0].State)
	assert.Equal(t, "outline.itemClick", entries[0].Command)
	assert.Len(t, entries[0].Icon, 2)
	assert.Equal(t, 1, entries[1].Depth)

	var buf bytes.Buffer
	DumpTree(&buf, result.Provider)
	assert.Contains(t, buf.String(), "root")
	assert.Contains(t, buf.String(), "tip")
}

func TestPackageDocLivesInTreeFile(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	var documented []string
	for _, name := range files {
		f, err := parser.ParseFile(token.NewFileSet(), name, nil, parser.PackageClauseOnly|parser.ParseComments)
		require.NoError(t, err)
		if f.Doc != nil {
			documented = append(documented, name)
		}
	}
	assert.Equal(t, []string{"tree.go"}, documented)
}
