package import_parser

import (
	"bufio"
	"strings"
)

// MarkdownParser imports markdown files
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to outline entries
func (p *MarkdownParser) Parse(content string) ([]*Entry, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var rootItems []*Entry
	// stack holds the open entry at each depth; the first headingDepth
	// entries are headings, list items nest below them
	var stack []*Entry
	headingDepth := 0

	attach := func(item *Entry, depth int) {
		depth = min(depth, len(stack))
		stack = stack[:depth]
		if depth == 0 {
			rootItems = append(rootItems, item)
		} else {
			stack[depth-1].addChild(item)
		}
		stack = append(stack, item)
	}

	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Check for header
		if strings.HasPrefix(line, "#") {
			level, text := parseHeader(line)
			if level >= 0 {
				item := newEntry(text)
				item.Heading = true

				// A header deeper than the open headings nests below the last one
				attach(item, min(level, headingDepth))
				headingDepth = len(stack)
				continue
			}
		}

		// Check for unordered list item
		if listLevel, text := parseListItem(line); listLevel >= 0 {
			attach(newEntry(text), headingDepth+listLevel)
			continue
		}

		// Plain text - add as item at appropriate level
		text := strings.TrimSpace(line)
		if text != "" {
			item := newEntry(text)
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.addChild(item)
			} else {
				rootItems = append(rootItems, item)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rootItems, nil
}

// parseHeader extracts level and text from markdown header
func parseHeader(line string) (level int, text string) {
	level = 0
	for i := 0; i < len(line) && line[i] == '#'; i++ {
		level++
	}

	if level == 0 || level > len(line) {
		return -1, ""
	}

	text = strings.TrimSpace(line[level:])
	return level - 1, text // Convert to 0-based level
}

// parseListItem extracts indentation level and text from list item
func parseListItem(line string) (level int, text string) {
	// Count leading spaces/tabs
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			indent++
		} else if line[i] == '\t' {
			indent += 2 // Treat tab as 2 spaces
		} else {
			break
		}
	}

	trimmed := strings.TrimSpace(line)

	// Check for list markers
	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		text = strings.TrimSpace(trimmed[2:])
		level = indent / 2 // 2 spaces per level
		return level, text
	}

	return -1, ""
}
