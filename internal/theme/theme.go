package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Tree view colors
	TreeNormalText      tcell.Color
	TreeSelectedItem    tcell.Color
	TreeSelectedBg      tcell.Color
	TreeMarkedItem      tcell.Color
	TreeDescription     tcell.Color
	TreeHighlight       tcell.Color
	TreeHighlightBg     tcell.Color
	TreeLeafArrow       tcell.Color
	TreeExpandableArrow tcell.Color
	TreeIcon            tcell.Color

	// Filter bar colors
	FilterPrompt tcell.Color
	FilterText   tcell.Color

	// Status line colors
	StatusMessage tcell.Color
	StatusTooltip tcell.Color

	// Header colors
	HeaderTitle tcell.Color
	HeaderBg    tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// IsDark reports whether the theme draws on a dark background.
// Terminal default backgrounds are assumed dark.
func (t *Theme) IsDark() bool {
	return IsDarkColor(t.Colors.Background, true)
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:          tcell.ColorDefault,
			TreeNormalText:      tcell.ColorDefault,
			TreeSelectedItem:    tcell.ColorDefault,
			TreeSelectedBg:      tcell.ColorDefault,
			TreeMarkedItem:      tcell.ColorDefault,
			TreeDescription:     tcell.ColorDefault,
			TreeHighlight:       tcell.ColorDefault,
			TreeHighlightBg:     tcell.ColorDefault,
			TreeLeafArrow:       tcell.ColorDefault,
			TreeExpandableArrow: tcell.ColorDefault,
			TreeIcon:            tcell.ColorDefault,
			FilterPrompt:        tcell.ColorDefault,
			FilterText:          tcell.ColorDefault,
			StatusMessage:       tcell.ColorDefault,
			StatusTooltip:       tcell.ColorDefault,
			HeaderTitle:         tcell.ColorDefault,
			HeaderBg:            tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	background := HexToColor("#1a1b26")
	text := HexToColor("#c0caf5")
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:          background,
			TreeNormalText:      text,                  // Light gray-blue
			TreeSelectedItem:    HexToColor("#7aa2f7"), // Blue
			TreeSelectedBg:      HexToColor("#283457"),
			TreeMarkedItem:      HexToColor("#e0af68"), // Yellow
			TreeDescription:     Blend(text, background, 0.45),
			TreeHighlight:       HexToColor("#1a1b26"),
			TreeHighlightBg:     HexToColor("#e0af68"),
			TreeLeafArrow:       HexToColor("#565f89"), // Comment gray
			TreeExpandableArrow: HexToColor("#7dcfff"), // Cyan
			TreeIcon:            HexToColor("#bb9af7"), // Magenta
			FilterPrompt:        HexToColor("#bb9af7"),
			FilterText:          text,
			StatusMessage:       HexToColor("#9ece6a"), // Green
			StatusTooltip:       HexToColor("#a9b1d6"),
			HeaderTitle:         HexToColor("#bb9af7"),
			HeaderBg:            HexToColor("#16161e"),
		},
	}
}
