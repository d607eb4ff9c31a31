package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Manager loads and saves prompt history as TOML files in one directory
type Manager struct {
	historyDir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a manager for ~/.local/share/tui-treeview/history/
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return NewManagerAt(filepath.Join(homeDir, ".local", "share", "tui-treeview", "history"))
}

// NewManagerAt creates a manager for dir, creating it if needed
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Manager{
		historyDir: dir,
	}, nil
}

// Dir returns the directory history files are kept in
func (m *Manager) Dir() string {
	return m.historyDir
}

// Load loads history entries from a TOML file. A missing or corrupted
// file yields no entries.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		return []string{}, nil
	}

	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(name string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(filepath.Join(m.historyDir, name), data, 0644)
}
