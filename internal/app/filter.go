package app

import (
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-treeview/internal/model"
)

// MatchRanges returns the rune ranges of text that a fuzzy match of query
// consumes, merged into half-open ranges. ok is false when query does not
// match.
func MatchRanges(query, text string) (ranges [][2]int, ok bool) {
	if query == "" {
		return nil, true
	}
	if !fuzzy.MatchFold(query, text) {
		return nil, false
	}

	want := []rune(query)
	pos := 0
	for idx, r := range []rune(text) {
		if pos == len(want) {
			break
		}
		if !foldEqual(r, want[pos]) {
			continue
		}
		pos++
		if n := len(ranges); n > 0 && ranges[n-1][1] == idx {
			ranges[n-1][1] = idx + 1
		} else {
			ranges = append(ranges, [2]int{idx, idx + 1})
		}
	}
	return ranges, true
}

// foldEqual reports whether a and b are equal under Unicode simple case
// folding, the way the fuzzy matcher compares runes
func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// FilterElements keeps the elements whose label matches query or that have a
// matching descendant. Matching labels get highlights. Ancestors of matches
// open so the matches are visible. An empty query returns elements as is.
func FilterElements(elements []*model.Element, query string) []*model.Element {
	if query == "" {
		return elements
	}

	var result []*model.Element
	for _, el := range elements {
		if filtered := filterElement(el, query); filtered != nil {
			result = append(result, filtered)
		}
	}
	return result
}

func filterElement(el *model.Element, query string) *model.Element {
	children := FilterElements(el.Children, query)
	ranges, ok := MatchRanges(query, el.Props.Label.Text)
	if !ok && len(children) == 0 {
		return nil
	}

	props := el.Props
	props.Label = model.Label{Text: props.Label.Text, Highlights: ranges}
	if len(children) > 0 {
		props.InitiallyExpanded = true
	}
	return &model.Element{Kind: el.Kind, Props: props, Children: children}
}
