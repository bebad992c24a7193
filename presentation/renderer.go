package presentation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/game"
)

// Kind says what a widget is for.
type Kind int

const (
	KindCell Kind = iota
	KindSlot
	KindStatus
)

// A WidgetFactory makes the widget for a board cell at (row, col), a tray
// slot (row is 0, col is the slot), or the status line.
type WidgetFactory func(k Kind, row, col int) Widget

type pos struct{ row, col int }

// Renderer drives a set of widgets from views.
type Renderer struct {
	cells  [][]Widget
	slots  []Widget
	status Widget
	// hinted cells have had a hint letter shown over them.
	hinted map[pos]bool
}

func NewRenderer(dim, traySize int, newWidget WidgetFactory) *Renderer {
	r := &Renderer{
		cells:  make([][]Widget, dim),
		slots:  make([]Widget, traySize),
		hinted: map[pos]bool{},
	}
	for row := range r.cells {
		r.cells[row] = make([]Widget, dim)
		for col := range r.cells[row] {
			r.cells[row][col] = newWidget(KindCell, row, col)
		}
	}
	for i := range r.slots {
		r.slots[i] = newWidget(KindSlot, 0, i)
	}
	r.status = newWidget(KindStatus, 0, 0)
	return r
}

var bonusColors = map[string]Color{
	board.Bonus2LS.String(): ColorDoubleLetter,
	board.Bonus3LS.String(): ColorTripleLetter,
	board.Bonus2WS.String(): ColorDoubleWord,
	board.Bonus3WS.String(): ColorTripleWord,
}

// Render brings every widget up to date with v.
func (r *Renderer) Render(v game.View) {
	for row := range r.cells {
		for col, w := range r.cells[row] {
			r.renderCell(w, v.Cell(row, col))
		}
	}
	for i, w := range r.slots {
		if i >= len(v.Tray) {
			w.SetText("")
			w.SetColor(ColorNone)
			continue
		}
		renderSlot(w, v.Tray[i])
	}
	r.status.SetText(statusLine(v))
	r.status.SetColor(ColorNone)
}

func (r *Renderer) renderCell(w Widget, c game.CellView) {
	p := pos{c.Row, c.Col}
	if c.Hint {
		if !r.hinted[p] {
			w.SetText(c.Letter)
			w.SetColor(ColorHint)
			r.hinted[p] = true
		}
		return
	}
	if r.hinted[p] {
		w.Revert()
		delete(r.hinted, p)
	}

	switch {
	case c.Letter != "":
		w.Place(tileOf(c.Letter, c.Wildcard))
		switch {
		case c.Pending:
			w.SetColor(ColorPending)
		case c.Wildcard:
			w.SetColor(ColorWildcard)
		case c.Fixed:
			w.SetColor(ColorFixed)
		default:
			w.SetColor(ColorNone)
		}
	case c.Bonus != "":
		w.SetText(c.Bonus)
		w.SetColor(bonusColors[c.Bonus])
	default:
		w.SetText(".")
		w.SetColor(ColorNone)
	}
}

func renderSlot(w Widget, s game.SlotView) {
	if s.Letter == "" {
		w.SetText(".")
	} else {
		w.Place(tileOf(s.Letter, s.Wildcard))
	}
	switch {
	case s.Held:
		w.SetColor(ColorHeld)
	case s.Wildcard:
		w.SetColor(ColorWildcard)
	default:
		w.SetColor(ColorNone)
	}
}

func tileOf(letter string, wildcard bool) board.Tile {
	rs := []rune(letter)
	t := board.Tile{Wildcard: wildcard}
	if len(rs) > 0 && rs[0] != board.WildcardMarker {
		t.Face = rs[0]
	}
	return t
}

func statusLine(v game.View) string {
	switch {
	case v.PlayPending != "":
		return "waiting on engine: " + v.PlayPending
	case v.HintPending:
		return "hint requested"
	case len(v.Messages) > 0:
		return v.Messages[0]
	}
	return ""
}

// TextBoard is a Renderer over TextWidgets that prints to a terminal. It
// is safe to render and print from different goroutines.
type TextBoard struct {
	mu     sync.Mutex
	r      *Renderer
	cells  [][]*TextWidget
	slots  []*TextWidget
	status *TextWidget
	color  bool
}

func NewTextBoard(dim, traySize int, color bool) *TextBoard {
	tb := &TextBoard{
		cells: make([][]*TextWidget, dim),
		slots: make([]*TextWidget, traySize),
		color: color,
	}
	for i := range tb.cells {
		tb.cells[i] = make([]*TextWidget, dim)
	}
	tb.r = NewRenderer(dim, traySize, func(k Kind, row, col int) Widget {
		w := &TextWidget{}
		switch k {
		case KindCell:
			tb.cells[row][col] = w
		case KindSlot:
			tb.slots[col] = w
		case KindStatus:
			tb.status = w
		}
		return w
	})
	return tb
}

// Update lets a TextBoard observe a session directly.
func (tb *TextBoard) Update(v game.View) {
	tb.Render(v)
}

func (tb *TextBoard) Render(v game.View) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.r.Render(v)
}

// Cell returns the widget for (row, col).
func (tb *TextBoard) Cell(row, col int) *TextWidget {
	return tb.cells[row][col]
}

func (tb *TextBoard) Slot(i int) *TextWidget {
	return tb.slots[i]
}

func (tb *TextBoard) String() string {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	var sb strings.Builder
	sb.WriteString("   ")
	for col := range tb.cells {
		fmt.Fprintf(&sb, "%-3d", col)
	}
	sb.WriteString("\n")
	for row, cells := range tb.cells {
		fmt.Fprintf(&sb, "%2d ", row)
		for _, w := range cells {
			sb.WriteString(w.Render(tb.color))
			sb.WriteString(strings.Repeat(" ", max(0, 3-len([]rune(w.Text())))))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   ")
	for _, w := range tb.slots {
		sb.WriteString(w.Render(tb.color))
		sb.WriteString(" ")
	}
	sb.WriteString("\n")
	if st := tb.status.Text(); st != "" {
		sb.WriteString(st)
		sb.WriteString("\n")
	}
	return sb.String()
}
