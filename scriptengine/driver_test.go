package scriptengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/xwordclient/common"
	"github.com/domino14/xwordclient/game"
	"github.com/domino14/xwordclient/protocol"
	"github.com/domino14/xwordclient/testhelpers"
)

const setupScript = `
push("BOARD_INIT", standard_bonuses())
push("GAME_INIT", {names = {"you", "engine"}, scores = {0, 12}})
assert(push("TILES", {letters = "RETIN-S"}))
`

func TestSetupScript(t *testing.T) {
	is := is.New(t)
	s := game.NewSession(game.DefaultBoardDim)
	d := NewDriver(protocol.NewAdapter(s))
	is.NoErr(d.RunString(context.Background(), setupScript))

	v := s.View()
	is.Equal(v.Cell(0, 0).Bonus, "TW")
	is.Equal(v.Players[1], game.PlayerView{Name: "engine", Score: 12})
	is.Equal(v.Tray[5].Letter, "?")
	is.True(v.Tray[5].Wildcard)
}

func TestPlayLoop(t *testing.T) {
	is := is.New(t)
	s, a := testhelpers.ReadySession(t, "QI")
	d := NewDriver(a)

	done := make(chan error, 1)
	go func() {
		done <- d.RunString(context.Background(), `
while alive() do
  local ok, cmd, raw = poll("CHECK_PLAY")
  if ok then
    assert(cmd == "play 7 7 QI y n", cmd)
    assert(raw == "QI", raw)
    push("CONFIRM_PLAY", {accepted = true, score = 22})
    return
  end
  sleep(2)
end
`)
	}()

	testhelpers.Place(t, s, 0, 7, 7)
	testhelpers.Place(t, s, 1, 7, 8)
	_, err := s.MakePlay()
	is.NoErr(err)

	select {
	case err := <-done:
		is.NoErr(err)
	case <-time.After(5 * time.Second):
		t.Fatal("script did not finish")
	}
	v := s.View()
	is.True(v.Cell(7, 8).Fixed)
	is.Equal(v.Players[1].Score, 22)
}

func TestRejectFromScript(t *testing.T) {
	is := is.New(t)
	s, a := testhelpers.ReadySession(t, "QI")
	testhelpers.Place(t, s, 0, 7, 7)
	_, err := s.MakePlay()
	is.NoErr(err)

	d := NewDriver(a)
	is.NoErr(d.RunString(context.Background(), `
local ok = poll("CHECK_PLAY")
assert(ok)
push("CONFIRM_PLAY", {accepted = false, message = "phony"})
`))
	is.Equal(s.Messages()[0], "phony")
	is.Equal(s.View().PendingLen, 1)
}

func TestHintAndSaveFromScript(t *testing.T) {
	is := is.New(t)
	s, a := testhelpers.ReadySession(t, "QI")
	s.SetGodMode(true)
	is.True(s.RequestHint())
	is.NoErr(s.RequestSave("out.sav"))

	d := NewDriver(a)
	is.NoErr(d.RunString(context.Background(), `
local ok, tray = poll("CHECK_HINT")
assert(ok and tray == "QI", tray)
assert(push("GIVE_HINT", {rows = {7}, cols = {7}, letters = "Q"}))
local sok, name = poll("CHECK_SAVE")
assert(sok and name == "out.sav")
assert(not poll("CHECK_SAVE"))
`))
	is.True(!s.View().HintPending)
}

func TestViewAndJSON(t *testing.T) {
	is := is.New(t)
	_, a := testhelpers.ReadySession(t, "QI")
	d := NewDriver(a)
	is.NoErr(d.RunString(context.Background(), `
local json = require("json")
local v = view()
assert(v.tray[1].letter == "Q")
assert(v.board[1][1].bonus == "TW")
local decoded = json.decode(json.encode(v.players))
assert(decoded[1].name == "cesar")
log(json.encode(v.players))
`))
}

func TestUnknownEventEndsSession(t *testing.T) {
	is := is.New(t)
	_, a := testhelpers.ReadySession(t, "QI")
	d := NewDriver(a)
	err := d.RunString(context.Background(), `
assert(not push(42, {}))
assert(not alive())
`)
	is.True(errors.Is(err, common.ErrUnrecognizedEvent))
}

func TestUnknownEventName(t *testing.T) {
	_, a := testhelpers.ReadySession(t, "QI")
	d := NewDriver(a)
	if err := d.RunString(context.Background(), `push("NOPE", {})`); err == nil {
		t.Fatal("expected an error")
	}
	// a script error is not a protocol error
	if a.Err() != nil {
		t.Fatal(a.Err())
	}
}

func TestCancel(t *testing.T) {
	is := is.New(t)
	_, a := testhelpers.ReadySession(t, "QI")
	d := NewDriver(a)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := d.RunString(ctx, `while true do sleep(5) end`)
	is.True(errors.Is(err, context.Canceled))
}
