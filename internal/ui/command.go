package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Prompt is a one-line input with a prefix, such as the ":" command line
// or the "/" filter
type Prompt struct {
	prefix  string
	active  bool
	input   []rune
	cursor  int // rune index
	history *History
}

// NewPrompt creates an inactive prompt. history may be nil.
func NewPrompt(prefix string, history *History) *Prompt {
	if history == nil {
		history = NewHistory(50)
	}
	return &Prompt{
		prefix:  prefix,
		history: history,
	}
}

// Start activates the prompt with empty input
func (p *Prompt) Start() {
	p.StartWith("")
}

// StartWith activates the prompt with the cursor after text
func (p *Prompt) StartWith(text string) {
	p.active = true
	p.input = []rune(text)
	p.cursor = len(p.input)
	p.history.Reset()
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive returns whether the prompt takes input
func (p *Prompt) IsActive() bool {
	return p.active
}

// Input returns the current input
func (p *Prompt) Input() string {
	return string(p.input)
}

// History returns the prompt history
func (p *Prompt) History() *History {
	return p.history
}

func (p *Prompt) set(text string) {
	p.input = []rune(text)
	p.cursor = len(p.input)
}

// deleteWordBackwards deletes the word before the cursor
func (p *Prompt) deleteWordBackwards() {
	pos := p.cursor
	for pos > 0 && (p.input[pos-1] == ' ' || p.input[pos-1] == '\t') {
		pos--
	}
	for pos > 0 && p.input[pos-1] != ' ' && p.input[pos-1] != '\t' {
		pos--
	}
	p.input = append(p.input[:pos:pos], p.input[p.cursor:]...)
	p.cursor = pos
}

// HandleKey processes a key press. done is true when the prompt closed:
// Enter returns the trimmed input, Escape and Backspace on empty input
// return "".
func (p *Prompt) HandleKey(ev *tcell.EventKey) (text string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return "", true
	case tcell.KeyEnter:
		text := strings.TrimSpace(p.Input())
		p.history.Add(text)
		p.Stop()
		return text, true
	case tcell.KeyUp:
		if prev, ok := p.history.Previous(p.Input()); ok {
			p.set(prev)
		}
	case tcell.KeyDown:
		if next, ok := p.history.Next(); ok {
			p.set(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) == 0 {
			p.Stop()
			return "", true
		}
		if p.cursor > 0 {
			p.input = append(p.input[:p.cursor-1:p.cursor-1], p.input[p.cursor:]...)
			p.cursor--
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.input) {
			p.input = append(p.input[:p.cursor:p.cursor], p.input[p.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case tcell.KeyRight:
		if p.cursor < len(p.input) {
			p.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.input)
	case tcell.KeyCtrlW:
		p.deleteWordBackwards()
	case tcell.KeyCtrlU:
		p.input = append([]rune(nil), p.input[p.cursor:]...)
		p.cursor = 0
	case tcell.KeyCtrlK:
		p.input = p.input[:p.cursor]
	case tcell.KeyRune:
		r := ev.Rune()
		p.input = append(p.input[:p.cursor:p.cursor], append([]rune{r}, p.input[p.cursor:]...)...)
		p.cursor++
	}

	return "", false
}

// Render draws the prompt on row y; an inactive prompt draws text without
// a cursor
func (p *Prompt) Render(screen *Screen, y int) {
	promptStyle := screen.FilterPromptStyle()
	textStyle := screen.FilterTextStyle()
	cursorStyle := textStyle.Reverse(true)
	screenWidth, _ := screen.Size()

	x := screen.DrawText(0, y, p.prefix, screenWidth, promptStyle)
	for idx, r := range p.input {
		style := textStyle
		if p.active && idx == p.cursor {
			style = cursorStyle
		}
		x = screen.DrawText(x, y, string(r), screenWidth, style)
	}
	if p.active && p.cursor >= len(p.input) {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}

	screen.FillLine(x, y, screen.BackgroundStyle())
}
