package ui

import "log"

// HistoryStore persists prompt history under a name
type HistoryStore interface {
	Load(name string) ([]string, error)
	Save(name string, entries []string) error
}

// History keeps previously entered prompt lines, oldest first, and walks
// back and forth through them
type History struct {
	entries []string
	index   int // -1 while not navigating
	max     int
	pending string // input typed before navigating started
	store   HistoryStore
	name    string
}

// NewHistory creates an in-memory history keeping at most maxEntries
func NewHistory(maxEntries int) *History {
	return &History{
		index: -1,
		max:   maxEntries,
	}
}

// LoadHistory creates a history persisted in store under name. The
// returned history is usable even when loading fails.
func LoadHistory(maxEntries int, store HistoryStore, name string) (*History, error) {
	h := NewHistory(maxEntries)
	h.store = store
	h.name = name

	entries, err := store.Load(name)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends an entry, skipping empty input and repeats of the newest
// entry, and saves the history when it has a store
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}

	if h.store != nil {
		if err := h.store.Save(h.name, h.entries); err != nil {
			log.Printf("failed to save %s history: %v", h.name, err)
		}
	}
}

// Previous steps back to an older entry. current is the input being typed;
// it comes back once Next walks past the newest entry.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index < 0:
		h.pending = current
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next steps forward to a newer entry
func (h *History) Next() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		pending := h.pending
		h.Reset()
		return pending, true
	}
	return h.entries[h.index], true
}

// Reset stops navigating
func (h *History) Reset() {
	h.index = -1
	h.pending = ""
}

// Entries returns a copy of all entries, oldest first
func (h *History) Entries() []string {
	entries := make([]string, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Len returns the number of entries in history
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating returns true if currently navigating through history
func (h *History) IsNavigating() bool {
	return h.index >= 0
}
