package import_parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONParser parses outlines stored as a JSON array of
// {"text", "heading", "children"} objects
type JSONParser struct{}

type jsonEntry struct {
	Text     string      `json:"text"`
	Heading  bool        `json:"heading,omitempty"`
	Children []jsonEntry `json:"children,omitempty"`
}

// Name returns the parser name
func (p *JSONParser) Name() string {
	return "JSON"
}

// Parse parses JSON content. Entries with blank text are dropped together
// with their children.
func (p *JSONParser) Parse(content string) ([]*Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	var raw []jsonEntry
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return convertJSON(raw, nil), nil
}

func convertJSON(raw []jsonEntry, parent *Entry) []*Entry {
	var result []*Entry
	for _, r := range raw {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		entry := newEntry(text)
		entry.Heading = r.Heading
		entry.Parent = parent
		entry.Children = convertJSON(r.Children, entry)
		result = append(result, entry)
	}
	return result
}
