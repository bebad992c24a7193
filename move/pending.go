package move

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
)

// Pending is the set of squares touched during the current, uncommitted
// turn, in the order they were touched.
type Pending struct {
	squares []*board.Square
}

func NewPending() *Pending {
	return &Pending{}
}

// Add appends a square. Adding a square already present does nothing.
func (p *Pending) Add(sq *board.Square) {
	if p.Contains(sq) {
		return
	}
	p.squares = append(p.squares, sq)
}

// Remove takes a square out of the set; it returns false if it was absent.
func (p *Pending) Remove(sq *board.Square) bool {
	if !p.Contains(sq) {
		return false
	}
	p.squares = lo.Without(p.squares, sq)
	return true
}

func (p *Pending) Contains(sq *board.Square) bool {
	return lo.Contains(p.squares, sq)
}

func (p *Pending) Len() int {
	return len(p.squares)
}

func (p *Pending) Empty() bool {
	return len(p.squares) == 0
}

// Squares returns the touched squares in touch order. The slice is a copy.
func (p *Pending) Squares() []*board.Square {
	return append([]*board.Square(nil), p.squares...)
}

func (p *Pending) Clear() {
	p.squares = nil
}

// Build validates the pending squares and composes the play. It never
// modifies the set, so on error the user can retract a tile and try again.
// An empty set builds nothing and returns false.
func (p *Pending) Build(godMode bool) (Play, bool, error) {
	if p.Empty() {
		return Play{}, false, nil
	}
	sorted := p.Squares()
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X() != sorted[j].X() {
			return sorted[i].X() < sorted[j].X()
		}
		return sorted[i].Y() < sorted[j].Y()
	})
	first := sorted[0]

	// A single tile is played across.
	horizontal := true
	if len(sorted) > 1 {
		switch {
		case sorted[1].X() == first.X():
			horizontal = false
		case sorted[1].Y() == first.Y():
			horizontal = true
		default:
			return Play{}, false, notStraight(first, sorted[1])
		}
	}

	var sb strings.Builder
	prev := first
	for i, sq := range sorted {
		if i > 0 {
			var gap int
			if horizontal {
				if sq.Y() != first.Y() {
					return Play{}, false, notStraight(first, sq)
				}
				gap = sq.X() - prev.X() - 1
			} else {
				if sq.X() != first.X() {
					return Play{}, false, notStraight(first, sq)
				}
				gap = sq.Y() - prev.Y() - 1
			}
			sb.WriteString(strings.Repeat(string(PlayedThroughMarker), gap))
		}
		t := sq.Tile()
		if !t.Resolved() {
			return Play{}, false, fmt.Errorf("%w: wildcard at (%d, %d) has no letter",
				common.ErrRefused, sq.Y(), sq.X())
		}
		sb.WriteRune(t.Face)
		prev = sq
	}

	return Play{
		Row:        first.Y(),
		Col:        first.X(),
		Word:       sb.String(),
		Horizontal: horizontal,
		Force:      godMode,
	}, true, nil
}

func notStraight(a, b *board.Square) error {
	return fmt.Errorf("%w: (%d, %d) and (%d, %d)", common.ErrNotStraightLine,
		a.Y(), a.X(), b.Y(), b.X())
}
