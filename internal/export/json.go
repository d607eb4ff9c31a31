package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

type jsonItem struct {
	Text     string      `json:"text"`
	Children []*jsonItem `json:"children,omitempty"`
}

// JSON writes elements as the JSON outline format read by the importer
func JSON(w io.Writer, elements []*model.Element) error {
	data, err := json.MarshalIndent(jsonItems(elements), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func jsonItems(elements []*model.Element) []*jsonItem {
	items := make([]*jsonItem, 0, len(elements))
	for _, el := range model.Flatten(elements) {
		children := jsonItems(el.Children)
		text := strings.TrimSpace(el.Props.Label.Text)
		if text == "" {
			items = append(items, children...)
			continue
		}
		items = append(items, &jsonItem{Text: text, Children: children})
	}
	return items
}
