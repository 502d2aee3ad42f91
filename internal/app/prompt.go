package app

import "github.com/dshills/grindmap/internal/renderer/backend"

// prompt is a one-line text input that asks for a file path. Enter turns
// the text into a command of kind; Escape abandons it.
type prompt struct {
	label  string
	kind   CommandKind
	buf    []rune
	cursor int
}

func newPrompt(label string, kind CommandKind, initial string) *prompt {
	buf := []rune(initial)
	return &prompt{label: label, kind: kind, buf: buf, cursor: len(buf)}
}

func (p *prompt) text() string {
	return string(p.buf)
}

// promptResult is what a key did to the prompt.
type promptResult int

const (
	promptEditing promptResult = iota
	promptConfirmed
	promptCancelled
)

func (p *prompt) handleKey(ev backend.Event) promptResult {
	switch ev.Key {
	case backend.KeyEnter:
		return promptConfirmed
	case backend.KeyEscape:
		return promptCancelled
	case backend.KeyBackspace:
		if p.cursor > 0 {
			p.buf = append(p.buf[:p.cursor-1], p.buf[p.cursor:]...)
			p.cursor--
		}
	case backend.KeyDelete:
		if p.cursor < len(p.buf) {
			p.buf = append(p.buf[:p.cursor], p.buf[p.cursor+1:]...)
		}
	case backend.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case backend.KeyRight:
		if p.cursor < len(p.buf) {
			p.cursor++
		}
	case backend.KeyHome:
		p.cursor = 0
	case backend.KeyEnd:
		p.cursor = len(p.buf)
	case backend.KeyRune:
		p.buf = append(p.buf[:p.cursor], append([]rune{ev.Rune}, p.buf[p.cursor:]...)...)
		p.cursor++
	}
	return promptEditing
}
