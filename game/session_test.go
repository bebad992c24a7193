package game

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
)

type recorder struct {
	mu    sync.Mutex
	views []View
}

func (r *recorder) Update(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recorder) last() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}

func readySession(t *testing.T, rack string) *Session {
	t.Helper()
	s := NewSession(15)
	s.SetHintDuration(time.Millisecond)
	if err := s.InitBoard(board.StandardLayout()); err != nil {
		t.Fatal(err)
	}
	if err := s.InitPlayers([]string{"cesar", "macondo"}, []int{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTray([]byte(rack)); err != nil {
		t.Fatal(err)
	}
	return s
}

// put moves tray slot i onto (row, col).
func put(t *testing.T, s *Session, i, row, col int) {
	t.Helper()
	if _, err := s.ClickTray(i); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ClickCell(row, col); err != nil {
		t.Fatal(err)
	}
}

func drainPlay(t *testing.T, s *Session) (string, string, bool) {
	t.Helper()
	var cmd, raw string
	ok, err := s.DrainPlay(func(c, r string) error {
		cmd, raw = c, r
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return cmd, raw, ok
}

func TestInteractionBeforeBoardInit(t *testing.T) {
	is := is.New(t)
	s := NewSession(15)
	_, err := s.ClickTray(0)
	is.True(errors.Is(err, common.ErrRefused))
	is.Equal(len(s.Messages()), 1)
}

func TestPickupSwapDrop(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "CAT")

	_, err := s.ClickTray(0)
	is.NoErr(err)
	is.True(s.View().Tray[0].Held)

	// Clicking another slot swaps and drops.
	_, err = s.ClickTray(2)
	is.NoErr(err)
	v := s.View()
	is.Equal(v.Tray[0].Letter, "T")
	is.Equal(v.Tray[2].Letter, "C")
	for _, sl := range v.Tray {
		is.True(!sl.Held)
	}

	// Swapping onto an empty slot moves the tile.
	_, err = s.ClickTray(1)
	is.NoErr(err)
	_, err = s.ClickTray(6)
	is.NoErr(err)
	is.Equal(s.View().Tray[6].Letter, "A")
	is.Equal(s.View().Tray[1].Letter, "")

	// Clicking an empty slot with nothing held does nothing.
	_, err = s.ClickTray(1)
	is.NoErr(err)
	is.Equal(s.held, noneHeld)
}

func TestPickupWhileHoldingIsIllegal(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "CAT")
	is.NoErr(s.pickup(0))
	is.True(errors.Is(s.pickup(1), common.ErrIllegalState))
	is.Equal(s.held, 0)
}

func TestPlaceAndRetract(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "CAT")
	put(t, s, 0, 7, 7)

	v := s.View()
	is.Equal(v.Cell(7, 7).Letter, "C")
	is.True(v.Cell(7, 7).Pending)
	is.Equal(v.Tray[0].Letter, "")
	is.Equal(v.PendingLen, 1)
	is.Equal(s.held, noneHeld)

	// Fill slot 0 so retraction has to look further along.
	_, err := s.ClickTray(1)
	is.NoErr(err)
	_, err = s.ClickTray(0)
	is.NoErr(err)

	_, err = s.ClickCell(7, 7)
	is.NoErr(err)
	v = s.View()
	is.Equal(v.Cell(7, 7).Letter, "")
	is.Equal(v.PendingLen, 0)
	is.Equal(v.Tray[0].Letter, "A")
	is.Equal(v.Tray[1].Letter, "C")
}

func TestRetractToOriginSlot(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	put(t, s, 1, 7, 7)
	_, err := s.ClickCell(7, 7)
	is.NoErr(err)
	is.Equal(s.View().Tray[1].Letter, "I")
}

func TestClickFixedSquareIsIgnored(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	is.NoErr(s.ApplyPlay([]board.Placement{{Row: 7, Col: 7, Letter: 'Z'}}, false, 0))
	_, err := s.ClickTray(0)
	is.NoErr(err)
	_, err = s.ClickCell(7, 7)
	is.NoErr(err)
	v := s.View()
	is.Equal(v.Cell(7, 7).Letter, "Z")
	is.True(v.Cell(7, 7).Fixed)
	// still holding
	is.True(v.Tray[0].Held)
}

func TestClickDroppedWhenBusy(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	s.mu.Lock()
	applied, err := s.ClickTray(0)
	s.mu.Unlock()
	is.NoErr(err)
	is.True(!applied)
	is.Equal(s.held, noneHeld)
}

func TestMakePlayAndConfirm(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "CATS")
	rec := &recorder{}
	s.AddObserver(rec)

	put(t, s, 0, 2, 0)
	put(t, s, 1, 3, 0)
	put(t, s, 2, 5, 0)

	cmd, err := s.MakePlay()
	is.NoErr(err)
	is.Equal(cmd, "play 2 0 CA_T n n")
	is.Equal(rec.last().PlayPending, cmd)

	got, raw, ok := drainPlay(t, s)
	is.True(ok)
	is.Equal(got, cmd)
	is.Equal(raw, "CATS")

	// delivered once
	_, _, ok = drainPlay(t, s)
	is.True(!ok)

	is.NoErr(s.ConfirmPlay(true, 14, ""))
	v := s.View()
	is.True(v.Cell(2, 0).Fixed)
	is.True(v.Cell(3, 0).Fixed)
	is.True(v.Cell(5, 0).Fixed)
	is.Equal(v.PendingLen, 0)
	is.Equal(v.PlayPending, "")
	is.Equal(v.Players[0].Name, "macondo")
	is.Equal(v.Players[1], PlayerView{Name: "cesar", Score: 14})
	is.Equal(s.Messages()[0], "cesar scored 14")
}

func TestRejectedPlayKeepsTiles(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "CATS")
	put(t, s, 0, 7, 7)
	put(t, s, 1, 7, 8)

	cmd, err := s.MakePlay()
	is.NoErr(err)
	_, _, ok := drainPlay(t, s)
	is.True(ok)

	is.NoErr(s.ConfirmPlay(false, 0, "bad word"))
	v := s.View()
	is.Equal(v.PlayPending, "")
	is.Equal(v.PendingLen, 2)
	is.True(!v.Cell(7, 7).Fixed)
	is.Equal(v.Cell(7, 8).Letter, "A")
	is.Equal(s.Messages()[0], "bad word")
	is.Equal(v.Players[0].Name, "cesar")

	again, err := s.MakePlay()
	is.NoErr(err)
	is.Equal(again, cmd)
}

func TestMakePlayNotStraight(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "CATS")
	put(t, s, 0, 1, 1)
	put(t, s, 1, 2, 2)
	_, err := s.MakePlay()
	is.True(errors.Is(err, common.ErrNotStraightLine))
	is.Equal(s.View().PendingLen, 2)
	is.Equal(s.View().PlayPending, "")
	is.True(strings.Contains(s.Messages()[0], "straight line"))
}

func TestMakePlayDropsHeldTile(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	put(t, s, 0, 3, 3)
	_, err := s.ClickTray(1)
	is.NoErr(err)
	cmd, err := s.MakePlay()
	is.NoErr(err)
	is.Equal(cmd, "play 3 3 Q y n")
	is.Equal(s.held, noneHeld)
}

func TestMakePlayEmptyIsNoop(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	cmd, err := s.MakePlay()
	is.NoErr(err)
	is.Equal(cmd, "")
	_, _, ok := drainPlay(t, s)
	is.True(!ok)
}

func TestPlacementRefusedWhilePlayOutstanding(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QIS")
	put(t, s, 0, 7, 7)
	_, err := s.MakePlay()
	is.NoErr(err)
	_, err = s.ClickCell(7, 7)
	is.True(errors.Is(err, common.ErrRefused))
	_, err = s.MakePlay()
	is.True(errors.Is(err, common.ErrRefused))
}

func TestConfirmWithoutPlayIsIllegal(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	is.True(errors.Is(s.ConfirmPlay(true, 3, ""), common.ErrIllegalState))
}

func TestRawTrayWithWildcard(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "Q-I")
	_, err := s.EnterWildcardLetter(1, 'a')
	is.NoErr(err)
	put(t, s, 1, 7, 7)
	put(t, s, 0, 7, 6)
	cmd, err := s.MakePlay()
	is.NoErr(err)
	is.Equal(cmd, "play 7 6 QA y n")
	_, raw, _ := drainPlay(t, s)
	is.Equal(raw, "Q-I")
}

func TestGodModeForcesPlays(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	s.SetGodMode(true)
	put(t, s, 0, 7, 7)
	cmd, err := s.MakePlay()
	is.NoErr(err)
	is.Equal(cmd, "play 7 7 Q y y")
}

func TestHintRequestRules(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	// not in god mode
	is.True(!s.RequestHint())

	s.SetGodMode(true)
	put(t, s, 0, 7, 7)
	// tiles pending
	is.True(!s.RequestHint())

	_, err := s.ClickCell(7, 7)
	is.NoErr(err)
	is.True(s.RequestHint())
	// already requested
	is.True(!s.RequestHint())
}

func TestHintRoundTrip(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	s.SetGodMode(true)
	rec := &recorder{}
	s.AddObserver(rec)
	slept := time.Duration(0)
	s.sleep = func(d time.Duration) { slept = d }

	is.True(s.RequestHint())
	var tray string
	ok, err := s.DrainHint(func(t string) error {
		tray = t
		return nil
	})
	is.NoErr(err)
	is.True(ok)
	is.Equal(tray, "QI")
	ok, err = s.DrainHint(func(string) error { return nil })
	is.NoErr(err)
	is.True(!ok)

	is.NoErr(s.GiveHint([]board.Placement{{Row: 7, Col: 7, Letter: 'Q'}, {Row: 7, Col: 8, Letter: 'I'}}))
	is.Equal(slept, time.Millisecond)

	// the view before the last shows the hint, the last shows it gone
	rec.mu.Lock()
	shown := rec.views[len(rec.views)-2]
	rec.mu.Unlock()
	is.Equal(shown.Cell(7, 8).Letter, "I")
	is.True(shown.Cell(7, 8).Hint)
	after := rec.last()
	is.Equal(after.Cell(7, 8).Letter, "")
	is.True(!after.HintPending)
}

func TestNoPlacementWhileHintOutstanding(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	s.SetGodMode(true)
	is.True(s.RequestHint())
	ok, err := s.DrainHint(func(string) error { return nil })
	is.NoErr(err)
	is.True(ok)

	_, err = s.ClickTray(0)
	is.NoErr(err)
	_, err = s.ClickCell(7, 7)
	is.True(errors.Is(err, common.ErrRefused))
	is.True(s.board.GetSquare(7, 7).IsEmpty())
	is.Equal(s.Messages()[0], "wait for the engine's hint before placing tiles")

	is.NoErr(s.GiveHint([]board.Placement{{Row: 7, Col: 7, Letter: 'Q'}}))
	// still holding slot 0
	_, err = s.ClickCell(7, 7)
	is.NoErr(err)
	is.Equal(s.View().PendingLen, 1)
}

func TestHintSkipsPendingTiles(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	s.SetGodMode(true)
	put(t, s, 0, 7, 8)
	// a request that raced the placement
	s.hintRequested = true

	is.NoErr(s.GiveHint([]board.Placement{{Row: 7, Col: 8, Letter: 'I'}, {Row: 7, Col: 9, Letter: 'Z'}}))
	v := s.View()
	is.Equal(v.Cell(7, 8).Letter, "Q")
	is.True(v.Cell(7, 8).Pending)
	is.Equal(v.Cell(7, 9).Letter, "")
	is.True(!v.HintPending)
}

func TestGiveHintWithoutRequestIsIllegal(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	err := s.GiveHint([]board.Placement{{Row: 7, Col: 7, Letter: 'Q'}})
	is.True(errors.Is(err, common.ErrIllegalState))
}

func TestSaveDeliveredOnce(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	var got string
	deliver := func(f string) error {
		got = f
		return nil
	}
	ok, err := s.DrainSave(deliver)
	is.NoErr(err)
	is.True(!ok)

	is.NoErr(s.RequestSave("game1.sav"))
	ok, err = s.DrainSave(deliver)
	is.NoErr(err)
	is.True(ok)
	is.Equal(got, "game1.sav")

	ok, err = s.DrainSave(deliver)
	is.NoErr(err)
	is.True(!ok)

	is.True(errors.Is(s.RequestSave(""), common.ErrRefused))
}

func TestFailedDeliveryKeepsRequest(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	is.NoErr(s.RequestSave("x.sav"))
	boom := errors.New("too big")
	ok, err := s.DrainSave(func(string) error { return boom })
	is.True(!ok)
	is.Equal(err, boom)
	ok, err = s.DrainSave(func(string) error { return nil })
	is.NoErr(err)
	is.True(ok)
}

func TestSetTrayClearsPending(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	put(t, s, 0, 7, 7)
	_, err := s.ClickTray(1)
	is.NoErr(err)
	is.NoErr(s.SetTray([]byte("AEINRST")))
	v := s.View()
	is.Equal(v.PendingLen, 0)
	is.Equal(v.Cell(7, 7).Letter, "")
	is.Equal(s.held, noneHeld)
	is.Equal(s.tray.String(), "AEINRST")
}

func TestApplyScoredPlay(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	is.NoErr(s.ApplyPlay([]board.Placement{
		{Row: 7, Col: 7, Letter: 'H'},
		{Row: 7, Col: 8, Letter: 'i'},
	}, true, 10))
	v := s.View()
	is.True(v.Cell(7, 8).Wildcard)
	is.Equal(v.Cell(7, 8).Letter, "I")
	is.Equal(v.Players[1], PlayerView{Name: "cesar", Score: 10})

	// playing onto an occupied square is a disagreement
	err := s.ApplyPlay([]board.Placement{{Row: 7, Col: 7, Letter: 'A'}}, false, 0)
	is.True(errors.Is(err, common.ErrIllegalState))
}

func TestInitBoardTwice(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	is.True(errors.Is(s.InitBoard(board.StandardLayout()), common.ErrIllegalState))
}

func TestInitPlayersMismatch(t *testing.T) {
	is := is.New(t)
	s := NewSession(15)
	is.True(errors.Is(s.InitPlayers([]string{"a"}, nil), common.ErrIllegalState))
}

func TestEditTray(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	is.True(errors.Is(s.EditTray("AB"), common.ErrRefused))
	s.SetGodMode(true)
	is.NoErr(s.EditTray("xyz-"))
	is.Equal(s.tray.String(), "XYZ?...")
}

func TestMessageLogBounded(t *testing.T) {
	is := is.New(t)
	s := NewSession(15)
	s.SetMaxMessages(2)
	for i := 0; i < 4; i++ {
		_, _ = s.ClickTray(i)
	}
	is.Equal(len(s.Messages()), 2)
}

func TestShuffleRefusedWhileHolding(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "AEINRST")
	_, err := s.ClickTray(0)
	is.NoErr(err)
	is.True(errors.Is(s.Shuffle(), common.ErrRefused))
	_, err = s.ClickTray(0)
	is.NoErr(err)
	is.NoErr(s.Shuffle())
	is.Equal(s.tray.NumTiles(), 7)
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	s := readySession(t, "QI")
	txt := s.ToDisplayText()
	is.True(strings.Contains(txt, "->"))
	is.True(strings.Contains(txt, "cesar"))
	is.True(strings.Contains(txt, "Tray: Q I"))
}
