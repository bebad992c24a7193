// Package board holds the client's copy of the game board: squares, their
// bonuses, and the tiles resting on them.
package board

import (
	"errors"
	"fmt"

	"github.com/domino14/xwordclient/common"
)

// A Placement is one (row, col, letter) entry as the engine sends it. For
// board init the letter is a bonus code or a pre-filled letter.
type Placement struct {
	Row    int
	Col    int
	Letter byte
}

// A GameBoard is the main board structure. Squares are stored column-major,
// squares[x][y] with x the column and y the row. The engine addresses the
// board as (row, col); SquareAt does that translation.
type GameBoard struct {
	squares     [][]*Square
	initialized bool
}

// MakeBoard creates an empty dim x dim board with no bonuses.
func MakeBoard(dim int) *GameBoard {
	cols := make([][]*Square, dim)
	for x := 0; x < dim; x++ {
		cols[x] = make([]*Square, dim)
		for y := 0; y < dim; y++ {
			cols[x][y] = newSquare(x, y)
		}
	}
	return &GameBoard{squares: cols}
}

// Dim is the dimension of the board. It assumes the board is square.
func (g *GameBoard) Dim() int {
	return len(g.squares)
}

func (g *GameBoard) posExists(x, y int) bool {
	d := g.Dim()
	return x >= 0 && x < d && y >= 0 && y < d
}

// GetSquare returns the square at column x, row y, or nil if off the board.
func (g *GameBoard) GetSquare(x, y int) *Square {
	if !g.posExists(x, y) {
		return nil
	}
	return g.squares[x][y]
}

// SquareAt returns the square at engine coordinates (row, col).
func (g *GameBoard) SquareAt(row, col int) (*Square, error) {
	sq := g.GetSquare(col, row)
	if sq == nil {
		return nil, fmt.Errorf("%w: (%d, %d) is off the board", common.ErrIllegalState, row, col)
	}
	return sq, nil
}

// Initialized returns true once Initialize has run.
func (g *GameBoard) Initialized() bool {
	return g.initialized
}

// Initialize applies the engine's bonus layout, and for resumed games any
// pre-filled letters, which are fixed immediately. It may only run once.
// A lowercase letter is a wildcard showing that letter. The whole layout
// is checked before any square changes, so a failed call leaves the board
// as it was.
func (g *GameBoard) Initialize(layout []Placement) ([]*Square, error) {
	if g.initialized {
		return nil, fmt.Errorf("%w: board already initialized", common.ErrIllegalState)
	}
	type change struct {
		sq    *Square
		bonus BonusSquare
		tile  Tile
	}
	changes := make([]change, 0, len(layout))
	bonused := map[*Square]bool{}
	filled := map[*Square]bool{}
	for _, p := range layout {
		sq, err := g.SquareAt(p.Row, p.Col)
		if err != nil {
			return nil, err
		}
		if bonus, ok := BonusFromWire(p.Letter); ok {
			if bonused[sq] || sq.bonus != NoBonus {
				return nil, illegal(sq, "bonus already set")
			}
			bonused[sq] = true
			changes = append(changes, change{sq: sq, bonus: bonus})
			continue
		}
		t, ok := TileFromBoardLetter(p.Letter)
		if !ok {
			return nil, fmt.Errorf("%w: code %d at (%d, %d)", common.ErrUnrecognizedBonus,
				p.Letter, p.Row, p.Col)
		}
		if filled[sq] || sq.fixed || !sq.IsEmpty() {
			return nil, illegal(sq, "place on occupied square")
		}
		filled[sq] = true
		changes = append(changes, change{sq: sq, tile: t})
	}

	prefilled := []*Square{}
	for _, c := range changes {
		if c.tile.IsZero() {
			c.sq.bonus = c.bonus
			continue
		}
		c.sq.tile = c.tile
		c.sq.origin = NoOrigin
		c.sq.fixed = true
		prefilled = append(prefilled, c.sq)
	}
	g.initialized = true
	return prefilled, nil
}

// TilesPlayed counts the fixed tiles on the board.
func (g *GameBoard) TilesPlayed() int {
	n := 0
	g.each(func(sq *Square) {
		if sq.fixed {
			n++
		}
	})
	return n
}

// IsEmpty returns if the board has no tiles at all.
func (g *GameBoard) IsEmpty() bool {
	for _, col := range g.squares {
		for _, sq := range col {
			if !sq.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// RevertAll clears every transient reveal. Fixed squares never carry one.
func (g *GameBoard) RevertAll() error {
	var errs []error
	g.each(func(sq *Square) {
		if _, ok := sq.Revealed(); ok {
			errs = append(errs, sq.Revert())
		}
	})
	return errors.Join(errs...)
}

// each visits squares row by row, left to right.
func (g *GameBoard) each(f func(sq *Square)) {
	n := g.Dim()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f(g.squares[x][y])
		}
	}
}
