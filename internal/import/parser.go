package import_parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatJSON         ImportFormat = "json"
	FormatAuto         ImportFormat = "auto" // Auto-detect from extension
)

// Parser interface for different import formats
type Parser interface {
	Parse(content string) ([]*Entry, error)
	Name() string
}

// Entry is one parsed outline line and its nested lines
type Entry struct {
	Text     string
	Heading  bool
	Children []*Entry
	Parent   *Entry
}

func newEntry(text string) *Entry {
	return &Entry{Text: text}
}

func (e *Entry) addChild(child *Entry) {
	e.Children = append(e.Children, child)
	child.Parent = e
}

// ImportFile parses content and returns the descriptor tree
func ImportFile(content string, format ImportFormat) ([]*model.Element, error) {
	entries, err := ParseEntries(content, format)
	if err != nil {
		return nil, err
	}
	return Elements(entries), nil
}

// ImportPath reads and parses a file, detecting the format from its name
// when format is FormatAuto
func ImportPath(path string, format ImportFormat) ([]*model.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}
	return ImportFile(string(data), format)
}

// ParseEntries parses content without converting it to descriptors
func ParseEntries(content string, format ImportFormat) ([]*Entry, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	case FormatJSON:
		parser = &JSONParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	entries, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return entries, nil
}

// DetectFormat attempts to detect the file format from extension
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatIndentedText
	}
}

// Elements converts parsed entries to tree item descriptors. Keys are the
// slash-joined label path, so an entry keeps its identity across reloads as
// long as its path does not change. Repeated sibling labels get a "#n"
// suffix.
func Elements(entries []*Entry) []*model.Element {
	return elements(entries, "")
}

func elements(entries []*Entry, parentKey string) []*model.Element {
	result := make([]*model.Element, 0, len(entries))
	seen := make(map[string]int)
	for _, entry := range entries {
		key := parentKey + "/" + entry.Text
		seen[key]++
		if n := seen[key]; n > 1 {
			key += "#" + strconv.Itoa(n)
		}

		props := model.Props{
			Key:   key,
			Label: model.PlainLabel(entry.Text),
			// Headings start open so the document structure is visible
			InitiallyExpanded: entry.Heading,
		}
		if entry.Heading {
			props.Description = "heading"
		} else if len(entry.Children) > 0 {
			props.Description = strconv.Itoa(len(entry.Children))
		}

		result = append(result, model.TreeItem(props, elements(entry.Children, key)...))
	}
	return result
}
