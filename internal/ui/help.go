package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() rune
	GetDescription() string
}

// treeKeys lists the keys handled by TreeView.HandleKey
var treeKeys = []string{
	"  Up/k, Down/j     - Move selection",
	"  Right/l          - Expand, or go to first child",
	"  Left/h           - Collapse, or go to parent",
	"  Home, End        - First or last row",
	"  PgUp, PgDn       - Page up or down",
	"  Enter, Space     - Activate item",
	"  x                - Mark item (multi-select views)",
	"  C                - Collapse all",
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// GetKeybindings returns a formatted list of keybindings
func (h *HelpScreen) GetKeybindings() []string {
	result := []string{"Keybindings:", ""}
	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %c  - %s", kb.GetKey(), kb.GetDescription()))
	}

	result = append(result, "", "Tree:")
	result = append(result, treeKeys...)
	result = append(result, "", "Special Keys:")
	result = append(result, "  Escape      - Close prompt, clear filter")
	result = append(result, "  Ctrl+C      - Quit")
	return result
}

// Render draws the help box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.BackgroundStyle()
	borderStyle := screen.TreeDescriptionStyle()
	titleStyle := screen.HeaderStyle()
	width, height := screen.Size()

	for y := 0; y < height; y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startY := 1
	startX := 2
	boxWidth := width - 4
	if boxWidth < 10 || height < 5 {
		return
	}

	horizontal := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}
	line := func(y int, text string, style tcell.Style) {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawText(startX+2, y, text, startX+boxWidth-2, style)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}

	horizontal(startY, '┌', '┐')
	line(startY+1, " Help (? to close) ", titleStyle)
	horizontal(startY+2, '├', '┤')

	y := startY + 3
	for _, binding := range h.GetKeybindings() {
		if y >= height-2 {
			break
		}
		line(y, binding, contentStyle)
		y++
	}
	horizontal(y, '└', '┘')
}
