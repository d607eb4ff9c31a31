package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/host"
)

// TreeView renders a tree pulled from a host.TreeDataProvider and raises
// selection and expansion events. It implements host.TreeView.
type TreeView[T comparable] struct {
	id       string
	provider host.TreeDataProvider[T]
	commands *host.Commands
	options  host.TreeViewOptions

	// Pulled data, dropped when the provider reports a change
	items    map[T]host.TreeItem
	children map[T][]T

	// Expansion state lives in the view. Items with an ID keep their state
	// when the provider hands out a new element for the same ID.
	expanded    map[T]bool
	expandedIDs map[string]bool

	rows           []*displayRow[T]
	dirty          bool
	selectedIdx    int
	viewportOffset int
	marked         map[T]bool

	selectionEvents host.EventEmitter[host.SelectionChangeEvent[T]]
	expandEvents    host.EventEmitter[host.ExpansionEvent[T]]
	collapseEvents  host.EventEmitter[host.ExpansionEvent[T]]
	subscription    host.Disposable
	disposed        bool
	changes         int
}

type displayRow[T comparable] struct {
	Element T
	Item    host.TreeItem
	Depth   int
}

// NewTreeView creates a view bound to provider. Item commands run through
// commands.
func NewTreeView[T comparable](id string, provider host.TreeDataProvider[T], commands *host.Commands, options host.TreeViewOptions) *TreeView[T] {
	tv := &TreeView[T]{
		id:          id,
		provider:    provider,
		commands:    commands,
		options:     options,
		items:       make(map[T]host.TreeItem),
		children:    make(map[T][]T),
		expanded:    make(map[T]bool),
		expandedIDs: make(map[string]bool),
		marked:      make(map[T]bool),
		dirty:       true,
	}
	tv.subscription = provider.OnDidChangeTreeData(tv.onDidChangeTreeData)
	return tv
}

// ID returns the view id
func (tv *TreeView[T]) ID() string {
	return tv.id
}

// Options returns the options the view was created with
func (tv *TreeView[T]) Options() host.TreeViewOptions {
	return tv.options
}

// Title returns the configured title, or the view id
func (tv *TreeView[T]) Title() string {
	if title := host.StringValue(tv.options.Title); title != "" {
		return title
	}
	return tv.id
}

// Changes returns how many change notifications the view has received
func (tv *TreeView[T]) Changes() int {
	return tv.changes
}

func (tv *TreeView[T]) onDidChangeTreeData(element T) {
	var zero T
	if element == zero {
		clear(tv.items)
		clear(tv.children)
	} else {
		delete(tv.items, element)
		delete(tv.children, element)
	}
	tv.changes++
	tv.dirty = true
}

func (tv *TreeView[T]) item(element T) host.TreeItem {
	if item, ok := tv.items[element]; ok {
		return item
	}
	item := tv.provider.GetTreeItem(element)
	tv.items[element] = item
	return item
}

func (tv *TreeView[T]) childrenOf(element T) []T {
	if children, ok := tv.children[element]; ok {
		return children
	}
	children := tv.provider.GetChildren(element)
	tv.children[element] = children
	return children
}

// isExpanded seeds the state from the item's collapsible state the first
// time an element is seen
func (tv *TreeView[T]) isExpanded(element T, item host.TreeItem) bool {
	if item.CollapsibleState == host.CollapsibleNone {
		return false
	}
	initial := item.CollapsibleState == host.CollapsibleExpanded
	if item.ID != "" {
		v, ok := tv.expandedIDs[item.ID]
		if !ok {
			v = initial
			tv.expandedIDs[item.ID] = v
		}
		return v
	}
	v, ok := tv.expanded[element]
	if !ok {
		v = initial
		tv.expanded[element] = v
	}
	return v
}

func (tv *TreeView[T]) setExpanded(element T, item host.TreeItem, expanded bool) {
	if item.ID != "" {
		tv.expandedIDs[item.ID] = expanded
	} else {
		tv.expanded[element] = expanded
	}
	tv.dirty = true
}

// ResetExpansion forgets every expand and collapse so items open again
// according to their collapsible state
func (tv *TreeView[T]) ResetExpansion() {
	clear(tv.expanded)
	clear(tv.expandedIDs)
	tv.dirty = true
}

// rebuildView re-reads the visible rows if anything changed
func (tv *TreeView[T]) rebuildView() {
	if !tv.dirty {
		return
	}

	var selected T
	hadSelection := false
	if tv.selectedIdx < len(tv.rows) {
		selected = tv.rows[tv.selectedIdx].Element
		hadSelection = true
	}

	var zero T
	tv.rows = tv.buildRows(tv.childrenOf(zero), 0, nil)
	tv.dirty = false

	visible := make(map[T]bool, len(tv.rows))
	for idx, row := range tv.rows {
		visible[row.Element] = true
		if hadSelection && row.Element == selected {
			tv.selectedIdx = idx
		}
	}
	for element := range tv.marked {
		if !visible[element] {
			delete(tv.marked, element)
		}
	}
	tv.prune()
	tv.ensureVisible()
}

// prune drops cached items, children and expansion state of elements that
// can no longer be reached from the root through the cached children.
// Expansion keyed by item ID survives since IDs are stable across renders.
func (tv *TreeView[T]) prune() {
	var zero T
	reachable := make(map[T]bool, len(tv.items))
	var walk func(element T)
	walk = func(element T) {
		for _, child := range tv.children[element] {
			if reachable[child] {
				continue
			}
			reachable[child] = true
			walk(child)
		}
	}
	walk(zero)

	for element := range tv.items {
		if !reachable[element] {
			delete(tv.items, element)
		}
	}
	for element := range tv.children {
		if element != zero && !reachable[element] {
			delete(tv.children, element)
		}
	}
	for element := range tv.expanded {
		if !reachable[element] {
			delete(tv.expanded, element)
		}
	}
}

func (tv *TreeView[T]) buildRows(elements []T, depth int, result []*displayRow[T]) []*displayRow[T] {
	for _, element := range elements {
		item := tv.item(element)
		result = append(result, &displayRow[T]{Element: element, Item: item, Depth: depth})
		if tv.isExpanded(element, item) {
			result = tv.buildRows(tv.childrenOf(element), depth+1, result)
		}
	}
	return result
}

// ensureVisible keeps the selected index within the rows
func (tv *TreeView[T]) ensureVisible() {
	if tv.selectedIdx >= len(tv.rows) {
		tv.selectedIdx = len(tv.rows) - 1
	}
	if tv.selectedIdx < 0 {
		tv.selectedIdx = 0
	}
}

// VisibleElements returns the elements of the visible rows in order
func (tv *TreeView[T]) VisibleElements() []T {
	tv.rebuildView()
	result := make([]T, len(tv.rows))
	for idx, row := range tv.rows {
		result[idx] = row.Element
	}
	return result
}

// VisibleItems returns the display items of the visible rows in order
func (tv *TreeView[T]) VisibleItems() []host.TreeItem {
	tv.rebuildView()
	result := make([]host.TreeItem, len(tv.rows))
	for idx, row := range tv.rows {
		result[idx] = row.Item
	}
	return result
}

// GetItemCount returns the number of visible rows
func (tv *TreeView[T]) GetItemCount() int {
	tv.rebuildView()
	return len(tv.rows)
}

// Selected returns the element under the cursor
func (tv *TreeView[T]) Selected() (T, bool) {
	tv.rebuildView()
	if tv.selectedIdx < len(tv.rows) {
		return tv.rows[tv.selectedIdx].Element, true
	}
	var zero T
	return zero, false
}

// SelectedItem returns the display item under the cursor
func (tv *TreeView[T]) SelectedItem() (host.TreeItem, bool) {
	tv.rebuildView()
	if tv.selectedIdx < len(tv.rows) {
		return tv.rows[tv.selectedIdx].Item, true
	}
	return host.TreeItem{}, false
}

// Selection returns the marked elements in display order when anything is
// marked, otherwise the element under the cursor
func (tv *TreeView[T]) Selection() []T {
	tv.rebuildView()
	if len(tv.marked) > 0 {
		result := make([]T, 0, len(tv.marked))
		for _, row := range tv.rows {
			if tv.marked[row.Element] {
				result = append(result, row.Element)
			}
		}
		return result
	}
	if element, ok := tv.Selected(); ok {
		return []T{element}
	}
	return nil
}

// OnDidChangeSelection subscribes to selection changes
func (tv *TreeView[T]) OnDidChangeSelection(listener func(host.SelectionChangeEvent[T])) host.Disposable {
	return tv.selectionEvents.Event(listener)
}

// OnDidExpandElement subscribes to expansions
func (tv *TreeView[T]) OnDidExpandElement(listener func(host.ExpansionEvent[T])) host.Disposable {
	return tv.expandEvents.Event(listener)
}

// OnDidCollapseElement subscribes to collapses
func (tv *TreeView[T]) OnDidCollapseElement(listener func(host.ExpansionEvent[T])) host.Disposable {
	return tv.collapseEvents.Event(listener)
}

// Dispose detaches the view from its provider and drops all listeners
func (tv *TreeView[T]) Dispose() {
	if tv.disposed {
		return
	}
	tv.disposed = true
	tv.subscription.Dispose()
	tv.selectionEvents.Dispose()
	tv.expandEvents.Dispose()
	tv.collapseEvents.Dispose()
}

// Disposed reports whether Dispose has been called
func (tv *TreeView[T]) Disposed() bool {
	return tv.disposed
}

func (tv *TreeView[T]) fireSelection() {
	tv.selectionEvents.Fire(host.SelectionChangeEvent[T]{Selection: tv.Selection()})
}

// moveTo moves the cursor and raises a selection event if it moved
func (tv *TreeView[T]) moveTo(idx int) {
	tv.rebuildView()
	if len(tv.rows) == 0 {
		return
	}
	idx = max(0, min(idx, len(tv.rows)-1))
	if idx == tv.selectedIdx {
		return
	}
	tv.selectedIdx = idx
	if len(tv.marked) == 0 {
		tv.fireSelection()
	}
}

// SelectNext moves selection down
func (tv *TreeView[T]) SelectNext() {
	tv.rebuildView()
	tv.moveTo(tv.selectedIdx + 1)
}

// SelectPrev moves selection up
func (tv *TreeView[T]) SelectPrev() {
	tv.rebuildView()
	tv.moveTo(tv.selectedIdx - 1)
}

// SelectFirst moves selection to the first row
func (tv *TreeView[T]) SelectFirst() {
	tv.moveTo(0)
}

// SelectLast moves selection to the last row
func (tv *TreeView[T]) SelectLast() {
	tv.rebuildView()
	tv.moveTo(len(tv.rows) - 1)
}

// ScrollPageUp moves selection up by pageSize rows
func (tv *TreeView[T]) ScrollPageUp(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	tv.rebuildView()
	tv.moveTo(tv.selectedIdx - pageSize)
	tv.viewportOffset = tv.selectedIdx
}

// ScrollPageDown moves selection down by pageSize rows
func (tv *TreeView[T]) ScrollPageDown(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	tv.rebuildView()
	tv.moveTo(tv.selectedIdx + pageSize)
	tv.viewportOffset = max(tv.selectedIdx-pageSize+1, 0)
}

// Expand expands the selected item, or moves to its first child when it
// is already expanded
func (tv *TreeView[T]) Expand() {
	tv.rebuildView()
	if tv.selectedIdx >= len(tv.rows) {
		return
	}
	row := tv.rows[tv.selectedIdx]
	if row.Item.CollapsibleState == host.CollapsibleNone {
		return
	}
	if !tv.isExpanded(row.Element, row.Item) {
		tv.setExpanded(row.Element, row.Item, true)
		tv.expandEvents.Fire(host.ExpansionEvent[T]{Element: row.Element})
		return
	}
	if tv.selectedIdx+1 < len(tv.rows) && tv.rows[tv.selectedIdx+1].Depth > row.Depth {
		tv.moveTo(tv.selectedIdx + 1)
	}
}

// Collapse collapses the selected item
// Smart behavior: if the item is not expanded, selection moves to the parent
func (tv *TreeView[T]) Collapse() {
	tv.rebuildView()
	if tv.selectedIdx >= len(tv.rows) {
		return
	}
	row := tv.rows[tv.selectedIdx]
	if tv.isExpanded(row.Element, row.Item) {
		tv.setExpanded(row.Element, row.Item, false)
		tv.collapseEvents.Fire(host.ExpansionEvent[T]{Element: row.Element})
		return
	}
	tv.SelectParent()
}

// SelectParent moves selection to the parent of the current row
func (tv *TreeView[T]) SelectParent() bool {
	tv.rebuildView()
	if tv.selectedIdx >= len(tv.rows) {
		return false
	}
	depth := tv.rows[tv.selectedIdx].Depth
	for idx := tv.selectedIdx - 1; idx >= 0; idx-- {
		if tv.rows[idx].Depth < depth {
			tv.moveTo(idx)
			return true
		}
	}
	return false
}

// CollapseAll collapses every expanded row, raising a collapse event for
// each one. It does nothing unless the view shows the collapse-all action.
func (tv *TreeView[T]) CollapseAll() bool {
	if !host.BoolValue(tv.options.ShowCollapseAll) {
		return false
	}
	tv.rebuildView()

	var collapsed []T
	for _, row := range tv.rows {
		if tv.isExpanded(row.Element, row.Item) {
			tv.setExpanded(row.Element, row.Item, false)
			collapsed = append(collapsed, row.Element)
		}
	}
	for _, element := range collapsed {
		tv.collapseEvents.Fire(host.ExpansionEvent[T]{Element: element})
	}
	return len(collapsed) > 0
}

// ToggleMark adds or removes the current row from the multi-selection.
// It does nothing unless the view allows selecting many.
func (tv *TreeView[T]) ToggleMark() bool {
	if !host.BoolValue(tv.options.CanSelectMany) {
		return false
	}
	element, ok := tv.Selected()
	if !ok {
		return false
	}
	if tv.marked[element] {
		delete(tv.marked, element)
	} else {
		tv.marked[element] = true
	}
	tv.fireSelection()
	return true
}

// Activate runs the command of the selected item
func (tv *TreeView[T]) Activate() error {
	item, ok := tv.SelectedItem()
	if !ok || item.Command == nil {
		return nil
	}
	if tv.commands == nil {
		return fmt.Errorf("activate %q: %w", item.Command.ID, host.ErrUnknownCommand)
	}
	return tv.commands.Execute(item.Command.ID, item.Command.Arguments...)
}

// HandleKey applies a navigation key. It reports whether the key was used.
func (tv *TreeView[T]) HandleKey(ev *tcell.EventKey, pageSize int) (bool, error) {
	switch ev.Key() {
	case tcell.KeyUp:
		tv.SelectPrev()
	case tcell.KeyDown:
		tv.SelectNext()
	case tcell.KeyHome:
		tv.SelectFirst()
	case tcell.KeyEnd:
		tv.SelectLast()
	case tcell.KeyPgUp:
		tv.ScrollPageUp(pageSize)
	case tcell.KeyPgDn:
		tv.ScrollPageDown(pageSize)
	case tcell.KeyRight:
		tv.Expand()
	case tcell.KeyLeft:
		tv.Collapse()
	case tcell.KeyEnter:
		return true, tv.Activate()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			tv.SelectPrev()
		case 'j':
			tv.SelectNext()
		case 'l':
			tv.Expand()
		case 'h':
			tv.Collapse()
		case ' ':
			return true, tv.Activate()
		case 'x':
			return tv.ToggleMark(), nil
		case 'C':
			return tv.CollapseAll(), nil
		default:
			return false, nil
		}
	default:
		return false, nil
	}
	return true, nil
}

// Render renders the visible rows between startY and startY+height
func (tv *TreeView[T]) Render(screen *Screen, startY, height int) {
	tv.rebuildView()

	defaultStyle := screen.TreeNormalStyle()
	selectedStyle := screen.TreeSelectedStyle()
	markedStyle := screen.TreeMarkedStyle()
	highlightStyle := screen.TreeHighlightStyle()
	descriptionStyle := screen.TreeDescriptionStyle()
	iconStyle := screen.TreeIconStyle()
	leafArrowStyle := screen.TreeLeafArrowStyle()
	expandableArrowStyle := screen.TreeExpandableArrowStyle()
	bgStyle := screen.BackgroundStyle()
	screenWidth, _ := screen.Size()
	height = max(height, 1)

	// Ensure viewport offset keeps selected item visible
	if tv.selectedIdx < tv.viewportOffset {
		tv.viewportOffset = tv.selectedIdx
	} else if tv.selectedIdx >= tv.viewportOffset+height {
		tv.viewportOffset = tv.selectedIdx - height + 1
	}
	maxOffset := max(len(tv.rows)-height, 0)
	tv.viewportOffset = max(0, min(tv.viewportOffset, maxOffset))

	y := startY
	for idx := tv.viewportOffset; idx < len(tv.rows) && y < startY+height; idx++ {
		row := tv.rows[idx]
		style := defaultStyle
		if tv.marked[row.Element] {
			style = markedStyle
		}
		if idx == tv.selectedIdx {
			style = selectedStyle
		}

		x := screen.DrawText(0, y, PadStringToWidth("", row.Depth*2), screenWidth, bgStyle)

		arrow, arrowStyle := " ", leafArrowStyle
		switch {
		case row.Item.CollapsibleState == host.CollapsibleNone:
		case tv.isExpanded(row.Element, row.Item):
			arrow, arrowStyle = "▼", expandableArrowStyle
		default:
			arrow, arrowStyle = "▶", expandableArrowStyle
		}
		x = screen.DrawText(x, y, arrow+" ", screenWidth, arrowStyle)

		if row.Item.IconPath != nil {
			x = screen.DrawText(x, y, "◆ ", screenWidth, iconStyle)
		}

		for _, segment := range SplitHighlights(row.Item.Label.Text, row.Item.Label.Highlights) {
			segmentStyle := style
			if segment.Highlighted {
				segmentStyle = highlightStyle
			}
			x = screen.DrawText(x, y, segment.Text, screenWidth, segmentStyle)
		}

		if row.Item.Description != "" {
			x = screen.DrawText(x, y, " "+row.Item.Description, screenWidth, descriptionStyle)
		}

		screen.FillLine(x, y, bgStyle)
		y++
	}

	// Clear remaining lines with background color
	for ; y < startY+height; y++ {
		screen.FillLine(0, y, bgStyle)
	}
}
