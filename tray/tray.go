// Package tray is the player's rack of tiles as the client shows it: a fixed
// number of ordered slots, each empty or holding one tile.
package tray

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"lukechampine.com/frand"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
)

// Size is the number of slots on a tray.
const Size = 7

// Tray is the rack. Slot order is display order.
type Tray struct {
	slots [Size]board.Tile
	// cursor is the next slot written by sequential editing.
	cursor int
}

// New creates an empty tray.
func New() *Tray {
	return &Tray{}
}

// FromString creates a tray from engine letters, `-` for wildcards.
func FromString(letters string) *Tray {
	t := New()
	t.SetFromWire([]byte(letters))
	return t
}

func checkIndex(i int) error {
	if i < 0 || i >= Size {
		return fmt.Errorf("%w: tray slot %d out of range", common.ErrIllegalState, i)
	}
	return nil
}

// SetFromWire replaces the tray contents: letters fill slots in order and
// any remaining slots are cleared.
func (t *Tray) SetFromWire(letters []byte) {
	t.Clear()
	for i, l := range letters {
		if i >= Size {
			break
		}
		t.slots[i] = board.TileFromWire(l)
	}
}

// Clear empties every slot and resets the edit cursor.
func (t *Tray) Clear() {
	t.slots = [Size]board.Tile{}
	t.cursor = 0
}

// Slot returns the tile in slot i; the zero Tile if empty.
func (t *Tray) Slot(i int) board.Tile {
	if checkIndex(i) != nil {
		return board.Tile{}
	}
	return t.slots[i]
}

// Slots returns a copy of every slot, in order.
func (t *Tray) Slots() []board.Tile {
	s := make([]board.Tile, Size)
	copy(s, t.slots[:])
	return s
}

// SetSlot puts a tile (or the zero Tile, to clear) into slot i.
func (t *Tray) SetSlot(i int, tile board.Tile) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	t.slots[i] = tile
	return nil
}

// Take removes the tile in slot i and returns it.
func (t *Tray) Take(i int) (board.Tile, error) {
	if err := checkIndex(i); err != nil {
		return board.Tile{}, err
	}
	tile := t.slots[i]
	if tile.IsZero() {
		return board.Tile{}, fmt.Errorf("%w: tray slot %d is empty", common.ErrIllegalState, i)
	}
	t.slots[i] = board.Tile{}
	return tile, nil
}

// Swap exchanges two slots. Either may be empty.
func (t *Tray) Swap(i, j int) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	if err := checkIndex(j); err != nil {
		return err
	}
	t.slots[i], t.slots[j] = t.slots[j], t.slots[i]
	return nil
}

// FirstEmptyIndexFrom returns the first empty slot at or after i, wrapping
// around, or -1 if the tray is full.
func (t *Tray) FirstEmptyIndexFrom(i int) int {
	if i < 0 || i >= Size {
		i = 0
	}
	for k := 0; k < Size; k++ {
		idx := (i + k) % Size
		if t.slots[idx].IsZero() {
			return idx
		}
	}
	return -1
}

// NumTiles returns the current number of tiles on this tray.
func (t *Tray) NumTiles() int {
	return lo.CountBy(t.slots[:], func(tile board.Tile) bool { return !tile.IsZero() })
}

func (t *Tray) Empty() bool {
	return t.NumTiles() == 0
}

// SetWildcardLetter gives the wildcard in slot i a letter, typed by the
// user. The slot stays a wildcard.
func (t *Tray) SetWildcardLetter(i int, letter rune) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	if !t.slots[i].Wildcard {
		return fmt.Errorf("%w: slot %d is not a wildcard", common.ErrRefused, i)
	}
	face, err := normalizeLetter(letter)
	if err != nil {
		return err
	}
	t.slots[i].Face = face
	return nil
}

// Type writes a tile at the edit cursor and advances it, wrapping at the
// end of the tray. `-` types a wildcard.
func (t *Tray) Type(letter rune) error {
	var tile board.Tile
	if letter == board.WireWildcard {
		tile = board.Tile{Wildcard: true}
	} else {
		face, err := normalizeLetter(letter)
		if err != nil {
			return err
		}
		tile = board.Tile{Face: face}
	}
	t.slots[t.cursor] = tile
	t.cursor = (t.cursor + 1) % Size
	return nil
}

// Cursor is the slot the next Type writes.
func (t *Tray) Cursor() int {
	return t.cursor
}

// Shuffle reorders the tray at random.
func (t *Tray) Shuffle() {
	frand.Shuffle(Size, func(i, j int) {
		t.slots[i], t.slots[j] = t.slots[j], t.slots[i]
	})
}

// Wire returns the tiles in slot order as the engine spells them.
func (t *Tray) Wire() string {
	var sb strings.Builder
	for _, tile := range t.slots {
		if !tile.IsZero() {
			sb.WriteRune(tile.Wire())
		}
	}
	return sb.String()
}

// String returns a user-visible version of this tray, one rune per slot.
func (t *Tray) String() string {
	var sb strings.Builder
	for _, tile := range t.slots {
		if tile.IsZero() {
			sb.WriteRune('.')
			continue
		}
		sb.WriteRune(tile.Letter())
	}
	return sb.String()
}

func normalizeLetter(letter rune) (rune, error) {
	if !unicode.IsLetter(letter) {
		return 0, fmt.Errorf("%w: %q is not a letter", common.ErrRefused, letter)
	}
	// a Caser keeps state, so each call gets its own
	u := []rune(cases.Upper(language.Und).String(string(letter)))
	if len(u) != 1 {
		return 0, fmt.Errorf("%w: %q has no single-letter upper case", common.ErrRefused, letter)
	}
	return u[0], nil
}
