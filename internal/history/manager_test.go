package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	m, err := NewManagerAt(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)

	require.NoError(t, m.Save("filter.toml", []string{"alpha", "be ta"}))

	entries, err := m.Load("filter.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "be ta"}, entries)
}

func TestLoadMissing(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)

	entries, err := m.Load("command.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "command.toml"), []byte("entries = ["), 0644))

	entries, err := m.Load("command.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
