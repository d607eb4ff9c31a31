// Package export writes outlines to files in the formats the importer reads
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// Writer writes elements in one format
type Writer func(w io.Writer, elements []*model.Element) error

// WriterFor picks the format from the file extension
func WriterFor(path string) Writer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return Markdown
	case ".json":
		return JSON
	default:
		return Indented
	}
}

// ToFile writes elements to path in the format matching its extension
func ToFile(elements []*model.Element, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriterFor(path)(f, elements); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
