// Package testhelpers has fixtures shared by the package tests.
package testhelpers

import (
	"testing"
	"time"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/game"
	"github.com/domino14/xwordclient/protocol"
)

var DefaultPlayers = []string{"cesar", "macondo"}

// ReadySession returns a session with the standard board, two players and
// the given rack, driven through an adapter the way the engine would.
// Hints show for a millisecond.
func ReadySession(tb testing.TB, rack string) (*game.Session, *protocol.Adapter) {
	tb.Helper()
	s := game.NewSession(game.DefaultBoardDim)
	s.SetHintDuration(time.Millisecond)
	a := protocol.NewAdapter(s)

	MustCall(tb, a, protocol.BoardInit, BoardFrame(board.StandardLayout()))
	f := &protocol.Frame{}
	if err := f.SetPlayers(DefaultPlayers, []int{0, 0}); err != nil {
		tb.Fatal(err)
	}
	MustCall(tb, a, protocol.GameInit, f)
	MustCall(tb, a, protocol.Tiles, TextFrame(rack))
	return s, a
}

// MustCall fails the test if the adapter refuses a push event.
func MustCall(tb testing.TB, a *protocol.Adapter, ev protocol.Event, f *protocol.Frame) {
	tb.Helper()
	if !a.Call(ev, f) {
		tb.Fatalf("%s refused: %v", ev, a.Err())
	}
}

func BoardFrame(layout []board.Placement) *protocol.Frame {
	f := &protocol.Frame{}
	if err := f.SetPlacements(layout); err != nil {
		panic(err)
	}
	return f
}

func TextFrame(s string) *protocol.Frame {
	f := &protocol.Frame{}
	if err := f.SetText(s); err != nil {
		panic(err)
	}
	return f
}

// Place clicks tray slot i and then the square at (row, col). Clicks
// dropped because the session is busy are retried.
func Place(tb testing.TB, s *game.Session, i, row, col int) {
	tb.Helper()
	click(tb, func() (bool, error) { return s.ClickTray(i) })
	click(tb, func() (bool, error) { return s.ClickCell(row, col) })
}

func click(tb testing.TB, f func() (bool, error)) {
	tb.Helper()
	for try := 0; try < 1000; try++ {
		applied, err := f()
		if err != nil {
			tb.Fatal(err)
		}
		if applied {
			return
		}
		time.Sleep(time.Millisecond)
	}
	tb.Fatal("click never got through")
}
