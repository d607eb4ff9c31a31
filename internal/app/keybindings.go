package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb *KeyBinding) GetKey() rune {
	return kb.Key
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up the application key bindings. Tree
// navigation keys are handled by the tree view itself.
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         '/',
			Description: "Filter",
			Handler: func(app *App) {
				app.filterPrompt.StartWith(app.filter)
			},
		},
		{
			Key:         ':',
			Description: "Command",
			Handler: func(app *App) {
				app.commandPrompt.Start()
			},
		},
		{
			Key:         'r',
			Description: "Reload file",
			Handler: func(app *App) {
				if err := app.Reload(); err != nil {
					app.reportError("Reload failed", err)
					return
				}
				app.SetStatus("Reloaded " + app.path)
			},
		},
		{
			Key:         'R',
			Description: "Rebuild tree",
			Handler: func(app *App) {
				if err := app.Rebuild(); err != nil {
					app.reportError("Rebuild failed", err)
					return
				}
				app.SetStatus("Rebuilt " + app.path)
			},
		},
		{
			Key:         '?',
			Description: "Help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'm',
			Description: "Messages",
			Handler: func(app *App) {
				app.showMessages = true
			},
		},
		{
			Key:         'D',
			Description: "Dump tree to log",
			Handler: func(app *App) {
				app.DumpTree()
				app.SetStatus("Dumped tree to log")
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch {
		case a.help.IsVisible():
			if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' || ev.Rune() == 'q' {
				a.help.Hide()
			}
		case a.showMessages:
			if ev.Key() == tcell.KeyEscape || ev.Rune() == 'm' || ev.Rune() == 'q' {
				a.showMessages = false
			}
		case a.commandPrompt.IsActive():
			if cmd, done := a.commandPrompt.HandleKey(ev); done && cmd != "" {
				a.handleCommand(cmd)
			}
		case a.filterPrompt.IsActive():
			a.handleFilterKey(ev)
		default:
			a.handleKeypress(ev)
		}
	}
}

// handleFilterKey edits the filter query; every change re-renders the tree
func (a *App) handleFilterKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyPgUp || ev.Key() == tcell.KeyPgDn {
		a.handleTreeKey(ev)
		return
	}

	text, done := a.filterPrompt.HandleKey(ev)
	query := a.filterPrompt.Input()
	if done {
		query = text
	}
	if err := a.SetFilter(query); err != nil {
		a.reportError("Filter failed", err)
	}
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if ev.Key() == tcell.KeyEscape && a.filter != "" {
		if err := a.SetFilter(""); err != nil {
			a.reportError("Filter failed", err)
		}
		return
	}
	if ev.Key() == tcell.KeyCtrlC {
		a.Quit()
		return
	}

	if ev.Key() == tcell.KeyRune {
		for _, kb := range a.InitializeKeybindings() {
			if kb.Key == ev.Rune() {
				kb.Handler(a)
				return
			}
		}
	}

	a.handleTreeKey(ev)
}

func (a *App) handleTreeKey(ev *tcell.EventKey) {
	if _, err := a.view.HandleKey(ev, a.pageSize()); err != nil {
		a.reportError("Command failed", err)
	}
}

// pageSize is the number of tree rows on screen
func (a *App) pageSize() int {
	_, height := a.screen.Size()
	return max(height-a.chromeHeight(), 1)
}

// chromeHeight is the number of rows not used by the tree
func (a *App) chromeHeight() int {
	rows := 2 // header and status line
	if a.promptActive() || a.filter != "" {
		rows++
	}
	return rows
}

func (a *App) promptActive() bool {
	return a.filterPrompt.IsActive() || a.commandPrompt.IsActive()
}
