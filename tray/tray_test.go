package tray

import (
	"errors"
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
)

func TestFromString(t *testing.T) {
	is := is.New(t)
	tr := FromString("CAT-")
	is.Equal(tr.NumTiles(), 4)
	is.Equal(tr.Slot(3), board.Tile{Wildcard: true})
	is.Equal(tr.String(), "CAT?...")
	is.Equal(tr.Wire(), "CAT-")

	tr.SetFromWire([]byte("QI"))
	is.Equal(tr.String(), "QI.....")
}

func TestFromStringTruncates(t *testing.T) {
	tr := FromString("ABCDEFGHIJ")
	assert.Equal(t, "ABCDEFG", tr.Wire())
	assert.Equal(t, Size, tr.NumTiles())
}

func TestSwapAndTake(t *testing.T) {
	is := is.New(t)
	tr := FromString("AB")
	is.NoErr(tr.Swap(0, 5))
	is.Equal(tr.String(), ".B...A.")

	tile, err := tr.Take(5)
	is.NoErr(err)
	is.Equal(tile, board.Tile{Face: 'A'})
	_, err = tr.Take(5)
	is.True(errors.Is(err, common.ErrIllegalState))
	is.True(errors.Is(tr.Swap(0, 7), common.ErrIllegalState))
}

func TestFirstEmptyIndexFrom(t *testing.T) {
	is := is.New(t)
	tr := FromString("ABCDEFG")
	is.Equal(tr.FirstEmptyIndexFrom(0), -1)

	_, err := tr.Take(2)
	is.NoErr(err)
	is.Equal(tr.FirstEmptyIndexFrom(0), 2)
	is.Equal(tr.FirstEmptyIndexFrom(2), 2)
	// wraps around
	is.Equal(tr.FirstEmptyIndexFrom(4), 2)
}

func TestSetWildcardLetter(t *testing.T) {
	is := is.New(t)
	tr := FromString("A-")
	is.NoErr(tr.SetWildcardLetter(1, 'e'))
	is.Equal(tr.Slot(1), board.Tile{Face: 'E', Wildcard: true})
	// The wire form keeps saying wildcard.
	is.Equal(tr.Wire(), "A-")

	is.True(errors.Is(tr.SetWildcardLetter(0, 'e'), common.ErrRefused))
	is.True(errors.Is(tr.SetWildcardLetter(1, '3'), common.ErrRefused))

	// Non-ASCII letters are upper-cased too.
	is.NoErr(tr.SetWildcardLetter(1, 'ñ'))
	is.Equal(tr.Slot(1).Face, 'Ñ')
}

func TestTypeSequentialFill(t *testing.T) {
	is := is.New(t)
	tr := New()
	for _, r := range "retinas" {
		is.NoErr(tr.Type(r))
	}
	is.Equal(tr.String(), "RETINAS")
	is.Equal(tr.Cursor(), 0)
	is.NoErr(tr.Type('-'))
	is.Equal(tr.String(), "?ETINAS")
	is.Equal(tr.Cursor(), 1)
	is.True(errors.Is(tr.Type('!'), common.ErrRefused))
}

func TestShuffleKeepsTiles(t *testing.T) {
	is := is.New(t)
	tr := FromString("AEINRST")
	tr.Shuffle()
	got := []rune(tr.Wire())
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	is.Equal(string(got), "AEINRST")
}
