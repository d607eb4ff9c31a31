package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	import_parser "github.com/pstuifzand/tui-treeview/internal/import"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(text string, children ...*model.Element) *model.Element {
	return model.TreeItem(model.Props{Key: text, Label: model.PlainLabel(text)}, children...)
}

func sample() []*model.Element {
	return []*model.Element{
		item("First Item",
			item("Nested Item 1"),
			item("Nested Item 2",
				item("Deep Item"),
			),
		),
		item("Second Item"),
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, sample()))

	expected := `- First Item
  - Nested Item 1
  - Nested Item 2
    - Deep Item
- Second Item
`
	assert.Equal(t, expected, buf.String())
}

func TestEmptyItemsKeepChildren(t *testing.T) {
	elements := []*model.Element{
		item("Parent",
			item("",
				item("Orphan"),
			),
		),
		model.Fragment(item("In fragment")),
	}

	var buf bytes.Buffer
	require.NoError(t, Indented(&buf, elements))
	assert.Equal(t, "Parent\n  Orphan\nIn fragment\n", buf.String())

	buf.Reset()
	require.NoError(t, Markdown(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriterFor(t *testing.T) {
	tests := []struct {
		path     string
		expected Writer
	}{
		{"out.md", Markdown},
		{"OUT.MARKDOWN", Markdown},
		{"out.json", JSON},
		{"out.txt", Indented},
		{"out", Indented},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := WriterFor(tt.path)
			assert.Equal(t, reflect.ValueOf(tt.expected).Pointer(), reflect.ValueOf(got).Pointer())
		})
	}
}

// Exported files import back to the same labels
func TestToFileRoundTrip(t *testing.T) {
	for _, name := range []string{"out.md", "out.json", "out.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, ToFile(sample(), path))

			elements, err := import_parser.ImportPath(path, import_parser.FormatAuto)
			require.NoError(t, err)
			assert.Equal(t, outline(sample()), outline(elements))
		})
	}
}

func TestToFileError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	assert.Error(t, ToFile(sample(), filepath.Join(blocker, "out.md")))
}

// outline lists labels with their depth
func outline(elements []*model.Element) []string {
	var result []string
	for _, el := range elements {
		model.Walk(el, func(el *model.Element, depth int) {
			result = append(result, string(rune('0'+depth))+el.Props.Label.Text)
		})
	}
	return result
}
