package game

import (
	"github.com/domino14/xwordclient/board"
)

// A View is a copy of everything the user can see. It holds no references
// into the session.
type View struct {
	// Board is indexed [row][col].
	Board       [][]CellView `json:"board" yaml:"board"`
	Tray        []SlotView   `json:"tray" yaml:"tray"`
	Players     []PlayerView `json:"players" yaml:"players"`
	GodMode     bool         `json:"god_mode" yaml:"god_mode"`
	HintPending bool         `json:"hint_pending" yaml:"hint_pending"`
	PlayPending string       `json:"play_pending,omitempty" yaml:"play_pending,omitempty"`
	SavePending string       `json:"save_pending,omitempty" yaml:"save_pending,omitempty"`
	PendingLen  int          `json:"pending_tiles" yaml:"pending_tiles"`
	Messages    []string     `json:"messages,omitempty" yaml:"messages,omitempty"`
}

type CellView struct {
	Row    int    `json:"row" yaml:"row"`
	Col    int    `json:"col" yaml:"col"`
	Letter string `json:"letter,omitempty" yaml:"letter,omitempty"`
	Bonus  string `json:"bonus,omitempty" yaml:"bonus,omitempty"`
	// Wildcard is set for a wildcard tile showing its chosen letter.
	Wildcard bool `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
	Fixed    bool `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Pending  bool `json:"pending,omitempty" yaml:"pending,omitempty"`
	// Hint is set while Letter is a transient hint letter.
	Hint bool `json:"hint,omitempty" yaml:"hint,omitempty"`
}

type SlotView struct {
	Letter   string `json:"letter,omitempty" yaml:"letter,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
	Held     bool   `json:"held,omitempty" yaml:"held,omitempty"`
}

type PlayerView struct {
	Name   string `json:"name" yaml:"name"`
	Score  int    `json:"score" yaml:"score"`
	OnTurn bool   `json:"on_turn,omitempty" yaml:"on_turn,omitempty"`
}

// Cell returns the view of the square at (row, col); the zero CellView if
// off the board.
func (v View) Cell(row, col int) CellView {
	if row < 0 || row >= len(v.Board) || col < 0 || col >= len(v.Board[row]) {
		return CellView{}
	}
	return v.Board[row][col]
}

func cellView(sq *board.Square, pending bool) CellView {
	c := CellView{
		Row:     sq.Y(),
		Col:     sq.X(),
		Fixed:   sq.Fixed(),
		Pending: pending,
	}
	if sq.Bonus() != board.NoBonus {
		c.Bonus = sq.Bonus().String()
	}
	if r, ok := sq.Revealed(); ok {
		c.Letter = string(r)
		c.Hint = true
	} else if t := sq.Tile(); !t.IsZero() {
		c.Letter = string(t.Letter())
		c.Wildcard = t.Wildcard
	}
	return c
}

// view must be called with the lock held.
func (s *Session) view() View {
	dim := s.board.Dim()
	v := View{
		Board:       make([][]CellView, dim),
		Tray:        make([]SlotView, 0, len(s.tray.Slots())),
		GodMode:     s.godMode,
		HintPending: s.hintRequested,
		PlayPending: s.playCommand,
		SavePending: s.saveRequest,
		PendingLen:  s.pending.Len(),
		Messages:    append([]string(nil), s.messages...),
	}
	for row := 0; row < dim; row++ {
		v.Board[row] = make([]CellView, dim)
		for col := 0; col < dim; col++ {
			sq := s.board.GetSquare(col, row)
			v.Board[row][col] = cellView(sq, s.pending.Contains(sq))
		}
	}
	for i, t := range s.tray.Slots() {
		sv := SlotView{Wildcard: t.Wildcard, Held: i == s.held}
		if !t.IsZero() {
			sv.Letter = string(t.Letter())
		}
		v.Tray = append(v.Tray, sv)
	}
	for i, p := range s.players {
		v.Players = append(v.Players, PlayerView{Name: p.name, Score: p.points, OnTurn: i == 0})
	}
	return v
}
