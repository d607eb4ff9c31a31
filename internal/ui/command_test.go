package ui

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	saved map[string][]string
	err   error
}

func (m *memoryStore) Load(name string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.saved[name], nil
}

func (m *memoryStore) Save(name string, entries []string) error {
	if m.saved == nil {
		m.saved = make(map[string][]string)
	}
	m.saved[name] = append([]string(nil), entries...)
	return nil
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(p *Prompt, text string) {
	for _, r := range text {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt(":", nil)
	p.Start()
	require.True(t, p.IsActive())

	typeText(p, "héllo")
	assert.Equal(t, "héllo", p.Input())

	p.HandleKey(key(tcell.KeyLeft))
	p.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "hélo", p.Input())

	p.HandleKey(key(tcell.KeyHome))
	typeText(p, "o")
	assert.Equal(t, "ohélo", p.Input())

	p.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, "oélo", p.Input())

	p.HandleKey(key(tcell.KeyEnd))
	typeText(p, " world")
	p.HandleKey(key(tcell.KeyCtrlW))
	assert.Equal(t, "oélo ", p.Input())

	text, done := p.HandleKey(key(tcell.KeyEnter))
	assert.True(t, done)
	assert.Equal(t, "oélo", text)
	assert.False(t, p.IsActive())
	assert.Equal(t, []string{"oélo"}, p.History().Entries())
}

func TestPromptEscapeAndEmptyBackspace(t *testing.T) {
	p := NewPrompt("/", nil)
	p.StartWith("abc")

	text, done := p.HandleKey(key(tcell.KeyEscape))
	assert.True(t, done)
	assert.Empty(t, text)
	assert.Zero(t, p.History().Len())

	p.Start()
	text, done = p.HandleKey(key(tcell.KeyBackspace))
	assert.True(t, done)
	assert.Empty(t, text)
	assert.False(t, p.IsActive())
}

func TestPromptHistoryNavigation(t *testing.T) {
	h := NewHistory(10)
	h.Add("first")
	h.Add("second")
	p := NewPrompt(":", h)
	p.Start()
	typeText(p, "draft")

	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "second", p.Input())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "first", p.Input())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "first", p.Input())

	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "second", p.Input())
	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "draft", p.Input())
	assert.False(t, h.IsNavigating())
}

func TestHistoryAdd(t *testing.T) {
	h := NewHistory(2)
	h.Add("")
	h.Add("a")
	h.Add("a")
	h.Add("b")
	h.Add("c")

	assert.Equal(t, []string{"b", "c"}, h.Entries())
}

func TestLoadHistoryPersists(t *testing.T) {
	store := &memoryStore{saved: map[string][]string{"command.toml": {"a", "b", "c"}}}

	h, err := LoadHistory(2, store, "command.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, h.Entries())

	h.Add("d")
	assert.Equal(t, []string{"c", "d"}, store.saved["command.toml"])
}

func TestLoadHistoryError(t *testing.T) {
	store := &memoryStore{err: errors.New("boom")}

	h, err := LoadHistory(5, store, "command.toml")
	assert.Error(t, err)
	require.NotNil(t, h)
	h.Add("x")
	assert.Equal(t, []string{"x"}, h.Entries())
}

func TestPromptRender(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim, nil)
	require.NoError(t, err)
	defer screen.Close()
	sim.SetSize(20, 2)

	p := NewPrompt("/", nil)
	p.StartWith("alp")
	p.Render(screen, 1)
	screen.Show()

	assert.Equal(t, "/alp", rowText(sim, 1))
}
