package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// Markdown writes elements as an unordered list, two spaces of indentation
// per level
func Markdown(w io.Writer, elements []*model.Element) error {
	return writeLines(w, elements, "- ")
}

// Indented writes elements as indented text, readable by the indented
// text importer
func Indented(w io.Writer, elements []*model.Element) error {
	return writeLines(w, elements, "")
}

func writeLines(w io.Writer, elements []*model.Element, bullet string) error {
	bw := bufio.NewWriter(w)
	for _, el := range model.Flatten(elements) {
		writeElement(bw, el, 0, bullet)
	}
	return bw.Flush()
}

// writeElement writes one element and its children. Elements without text
// are skipped but their children are still written at the same depth.
func writeElement(w *bufio.Writer, el *model.Element, depth int, bullet string) {
	text := strings.TrimSpace(el.Props.Label.Text)
	if text == "" {
		for _, child := range model.Flatten(el.Children) {
			writeElement(w, child, depth, bullet)
		}
		return
	}

	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(bullet)
	w.WriteString(text)
	w.WriteString("\n")

	for _, child := range model.Flatten(el.Children) {
		writeElement(w, child, depth+1, bullet)
	}
}
