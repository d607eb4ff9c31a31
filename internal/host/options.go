package host

// TreeViewOptions are passed through to the tree view unmodified.
// A nil field means "not set".
type TreeViewOptions struct {
	ShowCollapseAll *bool
	CanSelectMany   *bool
	DragAndDrop     *bool
	Title           *string
	Message         *string
}

// Merge returns o with every field that is set in over replaced
func (o TreeViewOptions) Merge(over TreeViewOptions) TreeViewOptions {
	if over.ShowCollapseAll != nil {
		o.ShowCollapseAll = over.ShowCollapseAll
	}
	if over.CanSelectMany != nil {
		o.CanSelectMany = over.CanSelectMany
	}
	if over.DragAndDrop != nil {
		o.DragAndDrop = over.DragAndDrop
	}
	if over.Title != nil {
		o.Title = over.Title
	}
	if over.Message != nil {
		o.Message = over.Message
	}
	return o
}

// Bool returns a pointer to b, for filling option fields
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s, for filling option fields
func String(s string) *string {
	return &s
}

// BoolValue dereferences an optional bool, false when unset
func BoolValue(b *bool) bool {
	return b != nil && *b
}

// StringValue dereferences an optional string, empty when unset
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
