// Package presentation draws session views. It only observes the session:
// widgets are driven from game.View snapshots and never hold session state.
package presentation

import (
	"fmt"

	"github.com/domino14/xwordclient/board"
)

type Color int

const (
	ColorNone Color = iota
	ColorFixed
	ColorPending
	ColorWildcard
	ColorHeld
	ColorHint
	ColorDoubleLetter
	ColorTripleLetter
	ColorDoubleWord
	ColorTripleWord
)

var ansiCodes = map[Color]string{
	ColorFixed:        "\033[1m",
	ColorPending:      "\033[32m",
	ColorWildcard:     "\033[33m",
	ColorHeld:         "\033[7m",
	ColorHint:         "\033[93m",
	ColorDoubleLetter: "\033[36m",
	ColorTripleLetter: "\033[34m",
	ColorDoubleWord:   "\033[35m",
	ColorTripleWord:   "\033[31m",
}

func (c Color) ansi(s string) string {
	code, ok := ansiCodes[c]
	if !ok {
		return s
	}
	return fmt.Sprintf("%s%s\033[0m", code, s)
}

// A Widget is one drawable spot: a board square, a tray slot, a status line.
type Widget interface {
	// Place shows a tile.
	Place(t board.Tile)
	SetText(s string)
	SetColor(c Color)
	// Revert goes back to what was showing before the last Place or
	// SetText.
	Revert()
}

// TextWidget is a Widget for plain terminals.
type TextWidget struct {
	text  string
	color Color

	prevText  string
	prevColor Color
	hasPrev   bool
}

func (w *TextWidget) save() {
	w.prevText, w.prevColor, w.hasPrev = w.text, w.color, true
}

func (w *TextWidget) Place(t board.Tile) {
	w.save()
	w.text = string(t.Letter())
}

func (w *TextWidget) SetText(s string) {
	w.save()
	w.text = s
}

func (w *TextWidget) SetColor(c Color) {
	w.color = c
}

func (w *TextWidget) Revert() {
	if !w.hasPrev {
		return
	}
	w.text, w.color = w.prevText, w.prevColor
	w.hasPrev = false
}

func (w *TextWidget) Text() string {
	return w.text
}

func (w *TextWidget) Color() Color {
	return w.color
}

// Render returns the widget's text, in color if asked.
func (w *TextWidget) Render(color bool) string {
	if !color {
		return w.text
	}
	return w.color.ansi(w.text)
}
