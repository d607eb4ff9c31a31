package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates and initializes a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, such as a
// simulation screen
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position with the given style
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	s.DrawText(x, y, text, s.width, style)
}

// DrawText draws text up to column maxX (exclusive), honoring wide runes.
// It returns the column after the last drawn rune.
func (s *Screen) DrawText(x, y int, text string, maxX int, style tcell.Style) int {
	for _, r := range text {
		rw := RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > maxX {
			break
		}
		s.SetCell(x, y, r, style)
		x += rw
	}
	return x
}

// FillLine fills the row from column x to the right edge with spaces
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the screen after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// Theme-aware style methods

// TreeNormalStyle returns the style for normal tree items
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeNormalText, s.Theme.Colors.Background)
}

// TreeSelectedStyle returns the style for the selected tree item
func (s *Screen) TreeSelectedStyle() tcell.Style {
	style := theme.ColorPairToStyle(s.Theme.Colors.TreeSelectedItem, s.Theme.Colors.TreeSelectedBg).Bold(true)
	if s.Theme.Colors.TreeSelectedBg == tcell.ColorDefault {
		style = style.Reverse(true)
	}
	return style
}

// TreeMarkedStyle returns the style for items in a multi-selection
func (s *Screen) TreeMarkedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeMarkedItem, s.Theme.Colors.Background).Underline(true)
}

// TreeDescriptionStyle returns the style for item descriptions
func (s *Screen) TreeDescriptionStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeDescription, s.Theme.Colors.Background).Dim(true)
}

// TreeHighlightStyle returns the style for highlighted label ranges
func (s *Screen) TreeHighlightStyle() tcell.Style {
	style := theme.ColorPairToStyle(s.Theme.Colors.TreeHighlight, s.Theme.Colors.TreeHighlightBg)
	if s.Theme.Colors.TreeHighlightBg == tcell.ColorDefault {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// TreeLeafArrowStyle returns the style for leaf node markers
func (s *Screen) TreeLeafArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeLeafArrow, s.Theme.Colors.Background)
}

// TreeExpandableArrowStyle returns the style for expandable node arrows
func (s *Screen) TreeExpandableArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeExpandableArrow, s.Theme.Colors.Background)
}

// TreeIconStyle returns the style for item icons
func (s *Screen) TreeIconStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeIcon, s.Theme.Colors.Background)
}

// FilterPromptStyle returns the style for the filter prompt
func (s *Screen) FilterPromptStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FilterPrompt, s.Theme.Colors.Background).Bold(true)
}

// FilterTextStyle returns the style for the filter query
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FilterText, s.Theme.Colors.Background)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// StatusTooltipStyle returns the style for the selected item's tooltip
func (s *Screen) StatusTooltipStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusTooltip, s.Theme.Colors.Background).Italic(true)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.HeaderBg).Bold(true)
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}
