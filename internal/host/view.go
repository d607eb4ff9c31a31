package host

// TreeDataProvider is the pull contract a tree view reads its data from.
// A zero T passed to GetChildren asks for the top-level entries.
type TreeDataProvider[T comparable] interface {
	GetTreeItem(element T) TreeItem
	GetChildren(element T) []T
	// OnDidChangeTreeData subscribes to change notifications. A zero T
	// means everything changed.
	OnDidChangeTreeData(listener func(T)) Disposable
}

// SelectionChangeEvent carries the full current selection
type SelectionChangeEvent[T any] struct {
	Selection []T
}

// ExpansionEvent carries the element that was expanded or collapsed
type ExpansionEvent[T any] struct {
	Element T
}

// TreeView is a constructed tree widget
type TreeView[T comparable] interface {
	OnDidChangeSelection(listener func(SelectionChangeEvent[T])) Disposable
	OnDidExpandElement(listener func(ExpansionEvent[T])) Disposable
	OnDidCollapseElement(listener func(ExpansionEvent[T])) Disposable
	Selection() []T
	Dispose()
}

// Window constructs tree views bound to a data provider
type Window[T comparable] interface {
	CreateTreeView(viewID string, provider TreeDataProvider[T], options TreeViewOptions) (TreeView[T], error)
}
