package app

import (
	"time"

	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/ui"
)

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	// Header: view title and the optional view message
	header := " " + a.view.Title() + " "
	if msg := host.StringValue(a.view.Options().Message); msg != "" {
		header += "- " + msg + " "
	}
	x := a.screen.DrawText(0, 0, header, width, a.screen.HeaderStyle())
	a.screen.FillLine(x, 0, a.screen.HeaderStyle())

	treeHeight := max(height-a.chromeHeight(), 1)
	a.view.Render(a.screen, 1, treeHeight)
	if a.filter != "" && a.view.GetItemCount() <= 1 {
		a.screen.DrawString(2, 2, "No matches", a.screen.StatusMessageStyle())
	}

	switch {
	case a.commandPrompt.IsActive():
		a.commandPrompt.Render(a.screen, height-2)
	case a.filterPrompt.IsActive():
		a.filterPrompt.Render(a.screen, height-2)
	case a.filter != "":
		y := height - 2
		x := a.screen.DrawText(0, y, "/", width, a.screen.FilterPromptStyle())
		x = a.screen.DrawText(x, y, a.filter, width, a.screen.FilterTextStyle())
		a.screen.FillLine(x, y, a.screen.BackgroundStyle())
	}

	a.renderStatus(height-1, width)

	if a.showMessages {
		a.renderMessages(width, height)
	}
	a.help.Render(a.screen)

	a.screen.Show()
}

// renderStatus shows a recent status message, otherwise the tooltip of the
// selected item
func (a *App) renderStatus(y, width int) {
	text, style := "", a.screen.StatusMessageStyle()
	if latest := a.messages.Latest(); latest != nil && time.Since(a.statusTime) <= statusTimeout {
		text = latest.Text
	} else if item, ok := a.view.SelectedItem(); ok && item.Tooltip != nil {
		text, style = item.Tooltip.Value, a.screen.StatusTooltipStyle()
	}
	x := a.screen.DrawText(0, y, ui.TruncateToWidthWithEllipsis(text, width), width, style)
	a.screen.FillLine(x, y, a.screen.BackgroundStyle())
}

// renderMessages draws the message log over the tree
func (a *App) renderMessages(width, height int) {
	style := a.screen.StatusMessageStyle()
	bg := a.screen.BackgroundStyle()

	lines := []string{" Messages (m to close)", ""}
	for _, msg := range a.messages.GetMessagesReverse() {
		lines = append(lines, " "+msg.String())
	}

	for idx, line := range lines {
		y := 1 + idx
		if y >= height-1 {
			break
		}
		x := a.screen.DrawText(0, y, ui.TruncateToWidthWithEllipsis(line, width), width, style)
		a.screen.FillLine(x, y, bg)
	}
}
