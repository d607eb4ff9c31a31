package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binding struct {
	key  rune
	desc string
}

func (b binding) GetKey() rune           { return b.key }
func (b binding) GetDescription() string { return b.desc }

func TestHelpScreen(t *testing.T) {
	h := NewHelpScreen()
	h.SetKeybindings([]KeyBindingInfo{binding{'/', "Filter"}, binding{'q', "Quit"}})

	lines := h.GetKeybindings()
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, []string{"Keybindings:", "", "  /  - Filter", "  q  - Quit"}, lines[:4])
	assert.Contains(t, lines, "Tree:")

	assert.False(t, h.IsVisible())
	h.Toggle()
	assert.True(t, h.IsVisible())

	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim, nil)
	require.NoError(t, err)
	defer screen.Close()
	sim.SetSize(40, 8)

	h.Render(screen)
	screen.Show()
	assert.Equal(t, "  ┌"+strings.Repeat("─", 34)+"┐", rowText(sim, 1))
	assert.Contains(t, rowText(sim, 2), "Help (? to close)")
	assert.Equal(t, "  └"+strings.Repeat("─", 34)+"┘", rowText(sim, 6))

	h.Hide()
	assert.False(t, h.IsVisible())
}
