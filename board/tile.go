package board

import "unicode"

const (
	// WireWildcard is how the engine spells a wildcard tile.
	WireWildcard = '-'
	// WildcardMarker is shown for a wildcard whose letter is not chosen yet.
	WildcardMarker = '?'
)

// A Tile is a letter-bearing unit. The zero Tile means "no tile". A wildcard
// with no chosen letter has a zero Face but is still a tile.
type Tile struct {
	Face     rune
	Wildcard bool
}

// TileFromWire decodes a single engine letter. `-` is an unresolved wildcard.
func TileFromWire(b byte) Tile {
	if b == WireWildcard {
		return Tile{Wildcard: true}
	}
	return Tile{Face: unicode.ToUpper(rune(b))}
}

// IsZero returns true if this is not a tile at all.
func (t Tile) IsZero() bool {
	return t.Face == 0 && !t.Wildcard
}

// Resolved returns true if the tile has a letter to play.
func (t Tile) Resolved() bool {
	return t.Face != 0
}

// Letter is the letter this tile spells on the board. An unresolved
// wildcard spells the marker.
func (t Tile) Letter() rune {
	if t.Face == 0 {
		return WildcardMarker
	}
	return t.Face
}

// Wire is the rack representation of the tile sent back to the engine.
// Wildcards are always sent as `-`; the engine resolves the letter from the
// word itself.
func (t Tile) Wire() rune {
	if t.Wildcard {
		return WireWildcard
	}
	return t.Face
}

func (t Tile) String() string {
	if t.IsZero() {
		return ""
	}
	return string(t.Letter())
}

// TileFromBoardLetter decodes a letter the engine put on the board. A
// lowercase letter is a wildcard standing for that letter. It returns false
// if b is not a letter.
func TileFromBoardLetter(b byte) (Tile, bool) {
	r := rune(b)
	if !unicode.IsLetter(r) {
		return Tile{}, false
	}
	return Tile{Face: unicode.ToUpper(r), Wildcard: unicode.IsLower(r)}, true
}
