package board

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/xwordclient/common"
)

// A BonusSquare is a bonus square (duh)
type BonusSquare rune

const (
	NoBonus BonusSquare = ' '
	// Bonus3WS is a triple word score
	Bonus3WS BonusSquare = '='
	// Bonus3LS is a triple letter score
	Bonus3LS BonusSquare = '"'
	// Bonus2LS is a double letter score
	Bonus2LS BonusSquare = '\''
	// Bonus2WS is a double word score
	Bonus2WS BonusSquare = '-'
)

// NoOrigin marks a square whose tile did not come from the tray.
const NoOrigin = -1

// Engine codes for bonuses in a board-init event.
const (
	wireDoubleLetter = 1
	wireTripleLetter = 2
	wireDoubleWord   = 3
	wireTripleWord   = 4
)

// BonusFromWire decodes an engine bonus code.
func BonusFromWire(code byte) (BonusSquare, bool) {
	switch code {
	case wireDoubleLetter:
		return Bonus2LS, true
	case wireTripleLetter:
		return Bonus3LS, true
	case wireDoubleWord:
		return Bonus2WS, true
	case wireTripleWord:
		return Bonus3WS, true
	}
	return NoBonus, false
}

// Wire returns the engine code for this bonus, or 0 for none.
func (b BonusSquare) Wire() byte {
	switch b {
	case Bonus2LS:
		return wireDoubleLetter
	case Bonus3LS:
		return wireTripleLetter
	case Bonus2WS:
		return wireDoubleWord
	case Bonus3WS:
		return wireTripleWord
	}
	return 0
}

func (b BonusSquare) String() string {
	switch b {
	case Bonus2LS:
		return "DL"
	case Bonus3LS:
		return "TL"
	case Bonus2WS:
		return "DW"
	case Bonus3WS:
		return "TW"
	}
	return "none"
}

// A Square is a single square in a game board. Its coordinates never change.
// It holds at most one tile, a bonus marking set once at board init, and a
// fixed flag that only ever goes from false to true.
type Square struct {
	x, y  int
	tile  Tile
	bonus BonusSquare
	fixed bool
	// origin is the tray slot the tile was taken from, while the tile still
	// belongs to the pending move.
	origin int
	// revealed is a transient letter shown over an empty square (hints).
	revealed rune
}

func newSquare(x, y int) *Square {
	return &Square{x: x, y: y, bonus: NoBonus, origin: NoOrigin}
}

func (s *Square) String() string {
	return fmt.Sprintf("<(%d,%d) %q (%s) fixed=%v>", s.x, s.y, s.tile.String(), s.bonus, s.fixed)
}

func illegal(s *Square, what string) error {
	return fmt.Errorf("%w: %s at (%d,%d)", common.ErrIllegalState, what, s.x, s.y)
}

// X is the column.
func (s *Square) X() int { return s.x }

// Y is the row.
func (s *Square) Y() int { return s.y }

func (s *Square) Tile() Tile { return s.tile }

func (s *Square) Bonus() BonusSquare { return s.bonus }

func (s *Square) Fixed() bool { return s.fixed }

// Origin is the tray slot of a pending tile, or NoOrigin.
func (s *Square) Origin() int { return s.origin }

// Revealed returns the transient letter over this square, if any.
func (s *Square) Revealed() (rune, bool) {
	return s.revealed, s.revealed != 0
}

func (s *Square) IsEmpty() bool {
	return s.tile.IsZero()
}

// PlaceTile puts a tile on an empty, non-fixed square. origin is the tray
// slot it came from, or NoOrigin for engine-placed tiles.
func (s *Square) PlaceTile(t Tile, origin int) error {
	if s.fixed {
		return illegal(s, "place on fixed square")
	}
	if !s.tile.IsZero() {
		return illegal(s, "place on occupied square")
	}
	if t.IsZero() {
		return illegal(s, "place of an empty tile")
	}
	s.tile = t
	s.origin = origin
	s.revealed = 0
	return nil
}

// RemoveTile takes the tile off the square and returns it with its origin.
func (s *Square) RemoveTile() (Tile, int, error) {
	if s.fixed {
		return Tile{}, NoOrigin, illegal(s, "remove from fixed square")
	}
	if s.tile.IsZero() {
		return Tile{}, NoOrigin, illegal(s, "remove from empty square")
	}
	t, origin := s.tile, s.origin
	s.tile = Tile{}
	s.origin = NoOrigin
	return t, origin, nil
}

// Finalize commits the tile permanently. The tile no longer belongs to the
// pending move.
func (s *Square) Finalize() error {
	if s.tile.IsZero() {
		return illegal(s, "finalize empty square")
	}
	if s.fixed {
		log.Debug().Int("x", s.x).Int("y", s.y).Msg("square already fixed")
	}
	s.origin = NoOrigin
	s.fixed = true
	return nil
}

// Reveal shows a transient letter on an empty square.
func (s *Square) Reveal(letter rune) error {
	if s.fixed {
		return illegal(s, "reveal on fixed square")
	}
	if !s.tile.IsZero() {
		return illegal(s, "reveal on occupied square")
	}
	s.revealed = letter
	return nil
}

// Revert restores the square's previous display value.
func (s *Square) Revert() error {
	if s.fixed {
		return illegal(s, "revert fixed square")
	}
	s.revealed = 0
	return nil
}

// DisplayString is what a plain terminal shows for this square.
func (s *Square) DisplayString() string {
	if s.revealed != 0 {
		return string(s.revealed)
	}
	if !s.tile.IsZero() {
		return string(s.tile.Letter())
	}
	if s.bonus != NoBonus {
		return string(s.bonus)
	}
	return "."
}
