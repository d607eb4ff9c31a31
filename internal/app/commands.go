package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pstuifzand/tui-treeview/internal/export"
)

// parseCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character outside single quotes.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	inWord := false
	escaped := false
	var quote rune

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand runs a ":" command line
func (a *App) handleCommand(input string) {
	parts := parseCommand(input)
	if len(parts) == 0 {
		return
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "q", "quit":
		a.Quit()
	case "reload":
		if err := a.Reload(); err != nil {
			a.reportError("Reload failed", err)
			return
		}
		a.SetStatus("Reloaded " + a.path)
	case "rebuild":
		if err := a.Rebuild(); err != nil {
			a.reportError("Rebuild failed", err)
			return
		}
		a.SetStatus("Rebuilt " + a.path)
	case "filter":
		if err := a.SetFilter(strings.Join(args, " ")); err != nil {
			a.reportError("Filter failed", err)
		}
	case "collapse":
		if !a.view.CollapseAll() {
			a.SetStatus("Nothing to collapse")
		}
	case "set":
		if len(args) != 2 {
			a.SetStatus("Usage: set <key> <value>")
			return
		}
		a.cfg.Set(args[0], args[1])
		a.applySettings()
		a.SetStatus(fmt.Sprintf("%s = %s", args[0], args[1]))
	case "persist":
		if len(args) != 2 {
			a.SetStatus("Usage: persist <key> <value>")
			return
		}
		if a.cfg.Settings == nil {
			a.cfg.Settings = make(map[string]string)
		}
		a.cfg.Settings[args[0]] = args[1]
		if err := a.cfg.Save(); err != nil {
			a.reportError("Saving config failed", err)
			return
		}
		a.applySettings()
		a.SetStatus(fmt.Sprintf("Saved %s = %s", args[0], args[1]))
	case "get":
		if len(args) != 1 {
			a.SetStatus("Usage: get <key>")
			return
		}
		a.SetStatus(fmt.Sprintf("%s = %s", args[0], a.cfg.Get(args[0])))
	case "settings":
		all := a.cfg.GetAll()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.SetStatus(fmt.Sprintf("%s = %s", k, all[k]))
		}
		a.showMessages = true
	case "export":
		if len(args) != 1 {
			a.SetStatus("Usage: export <file>")
			return
		}
		if err := export.ToFile(FilterElements(a.elements, a.filter), args[0]); err != nil {
			a.reportError("Export failed", err)
			return
		}
		a.SetStatus("Exported to " + args[0])
	case "dump":
		a.DumpTree()
		a.SetStatus("Dumped tree to log")
	case "messages":
		a.showMessages = true
	default:
		a.SetStatus("Unknown command: " + name)
	}
}

// applySettings re-renders so settings such as "icons" take effect
func (a *App) applySettings() {
	if err := a.result.Update(a.rootElement()); err != nil {
		a.reportError("Update failed", err)
	}
}
