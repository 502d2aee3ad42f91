// Package statusline draws the two bottom rows of the editor: a status bar
// with the file name and edit state, and below it either a path prompt or a
// message.
package statusline

import (
	"github.com/dshills/grindmap/internal/renderer/backend"
	"github.com/dshills/grindmap/internal/renderer/core"
)

// MessageType is the severity of a message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine holds what the bottom rows show.
type StatusLine struct {
	filename string
	modified bool
	info     string // Right side of the status bar

	promptActive bool
	promptLabel  string
	promptBuffer string
	promptCursor int

	message     string
	messageType MessageType

	width int
}

// Rows is the number of screen rows the status line uses.
const Rows = 2

// New creates an empty status line.
func New() *StatusLine {
	return &StatusLine{}
}

// SetFilename sets the document name shown on the left.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified toggles the unsaved-changes marker.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetInfo sets the text shown on the right of the status bar.
func (s *StatusLine) SetInfo(info string) {
	s.info = info
}

// SetPrompt shows an input prompt. cursor is a rune index into buffer.
func (s *StatusLine) SetPrompt(label, buffer string, cursor int) {
	s.promptActive = true
	s.promptLabel = label
	s.promptBuffer = buffer
	s.promptCursor = cursor
}

// ClearPrompt hides the prompt.
func (s *StatusLine) ClearPrompt() {
	s.promptActive = false
	s.promptLabel, s.promptBuffer, s.promptCursor = "", "", 0
}

// SetMessage shows msg on the bottom row until it is replaced or cleared.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage removes the message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize sets the width in columns.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status bar at row and the prompt or message at row+1.
func (s *StatusLine) Render(b backend.Backend, row int) {
	s.renderStatusBar(b, row)
	if s.promptActive {
		s.renderPrompt(b, row+1)
		return
	}
	b.HideCursor()
	s.renderMessage(b, row+1)
}

func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	barStyle := core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite)
	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', barStyle))

	filename := s.filename
	if s.modified {
		filename += " [+]"
	}
	col := s.put(b, 1, row, filename, barStyle.Bold(), s.width-len(s.info)-2)

	infoStart := s.width - len([]rune(s.info)) - 1
	if infoStart > col {
		s.put(b, infoStart, row, s.info, barStyle, s.width)
	}
}

func (s *StatusLine) renderPrompt(b backend.Backend, row int) {
	style := core.DefaultStyle()
	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', style))

	col := s.put(b, 0, row, s.promptLabel, style.Bold(), s.width)
	s.put(b, col, row, s.promptBuffer, style, s.width)
	b.ShowCursor(col+s.promptCursor, row)
}

func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	var style core.Style
	switch s.messageType {
	case MessageError:
		style = core.DefaultStyle().WithForeground(core.ColorFromRGB(255, 80, 80)).Bold()
	case MessageWarning:
		style = core.DefaultStyle().WithForeground(core.ColorYellow)
	default:
		style = core.DefaultStyle()
	}

	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', style))
	s.put(b, 0, row, s.message, style, s.width)
}

// put draws text from col, stopping before limit, and returns the column
// after the last rune drawn.
func (s *StatusLine) put(b backend.Backend, col, row int, text string, style core.Style, limit int) int {
	for _, r := range text {
		if col >= limit {
			break
		}
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	return col
}
