package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		Background          string `toml:"background"`
		TreeNormalText      string `toml:"tree_normal_text"`
		TreeSelectedItem    string `toml:"tree_selected_item"`
		TreeSelectedBg      string `toml:"tree_selected_bg"`
		TreeMarkedItem      string `toml:"tree_marked_item"`
		TreeDescription     string `toml:"tree_description"`
		TreeHighlight       string `toml:"tree_highlight"`
		TreeHighlightBg     string `toml:"tree_highlight_bg"`
		TreeLeafArrow       string `toml:"tree_leaf_arrow"`
		TreeExpandableArrow string `toml:"tree_expandable_arrow"`
		TreeIcon            string `toml:"tree_icon"`
		FilterPrompt        string `toml:"filter_prompt"`
		FilterText          string `toml:"filter_text"`
		StatusMessage       string `toml:"status_message"`
		StatusTooltip       string `toml:"status_tooltip"`
		HeaderTitle         string `toml:"header_title"`
		HeaderBg            string `toml:"header_bg"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-treeview", "themes"),
			filepath.Join(home, ".local", "share", "tui-treeview", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	return ParseTheme(data)
}

// ParseTheme parses TOML theme data
func ParseTheme(data []byte) (*Theme, error) {
	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	t := TokyoNight()
	c := config.Colors

	override := func(dst *tcell.Color, value string) {
		if value != "" {
			*dst = ParseColorString(value)
		}
	}

	override(&t.Colors.Background, c.Background)
	override(&t.Colors.TreeNormalText, c.TreeNormalText)
	override(&t.Colors.TreeSelectedItem, c.TreeSelectedItem)
	override(&t.Colors.TreeSelectedBg, c.TreeSelectedBg)
	override(&t.Colors.TreeMarkedItem, c.TreeMarkedItem)
	override(&t.Colors.TreeHighlight, c.TreeHighlight)
	override(&t.Colors.TreeHighlightBg, c.TreeHighlightBg)
	override(&t.Colors.TreeLeafArrow, c.TreeLeafArrow)
	override(&t.Colors.TreeExpandableArrow, c.TreeExpandableArrow)
	override(&t.Colors.TreeIcon, c.TreeIcon)
	override(&t.Colors.FilterPrompt, c.FilterPrompt)
	override(&t.Colors.FilterText, c.FilterText)
	override(&t.Colors.StatusMessage, c.StatusMessage)
	override(&t.Colors.StatusTooltip, c.StatusTooltip)
	override(&t.Colors.HeaderTitle, c.HeaderTitle)
	override(&t.Colors.HeaderBg, c.HeaderBg)

	// Descriptions fade toward the background unless set explicitly
	if c.TreeDescription != "" {
		t.Colors.TreeDescription = ParseColorString(c.TreeDescription)
	} else {
		t.Colors.TreeDescription = Blend(t.Colors.TreeNormalText, t.Colors.Background, 0.45)
	}

	if config.Name != "" {
		t.Name = config.Name
	}

	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	if themeName == "default" {
		return Default()
	}
	if themeName == "tokyo-night" || themeName == "" {
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
