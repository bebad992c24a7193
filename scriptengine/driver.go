// Package scriptengine plays the engine side of the protocol from a Lua
// script. The script pushes events into the client and polls it for
// requests through the same Adapter and Frames a native engine would use.
//
// Globals available to scripts:
//
//	push(event, tbl)      -> bool
//	poll(event)           -> ok, payload1, payload2
//	sleep(ms)
//	alive()               -> bool
//	view()                -> table
//	standard_bonuses()    -> tbl for push("BOARD_INIT", ...)
//	log(msg)
//
// and require("json").
package scriptengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/protocol"
)

const driverGlobal = "xword_driver"

// Driver runs engine scripts against an adapter.
type Driver struct {
	adapter *protocol.Adapter
	ctx     context.Context
}

func NewDriver(a *protocol.Adapter) *Driver {
	return &Driver{adapter: a}
}

// RunFile runs the script at path until it returns, the context is
// cancelled, or the session is terminated.
func (d *Driver) RunFile(ctx context.Context, path string) error {
	return d.run(ctx, func(L *lua.LState) error { return L.DoFile(path) })
}

// RunString runs a script held in memory.
func (d *Driver) RunString(ctx context.Context, src string) error {
	return d.run(ctx, func(L *lua.LState) error { return L.DoString(src) })
}

func (d *Driver) run(ctx context.Context, do func(L *lua.LState) error) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)
	d.ctx = ctx

	luajson.Preload(L)
	ud := L.NewUserData()
	ud.Value = d
	L.SetGlobal(driverGlobal, ud)
	L.SetGlobal("push", L.NewFunction(Push))
	L.SetGlobal("poll", L.NewFunction(Poll))
	L.SetGlobal("sleep", L.NewFunction(Sleep))
	L.SetGlobal("alive", L.NewFunction(Alive))
	L.SetGlobal("view", L.NewFunction(View))
	L.SetGlobal("standard_bonuses", L.NewFunction(StandardBonuses))
	L.SetGlobal("log", L.NewFunction(Log))

	err := do(L)
	if aerr := d.adapter.Err(); aerr != nil && !errors.Is(aerr, protocol.ErrTerminated) {
		return aerr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		log.Err(err).Msg("engine-script-error")
		return err
	}
	return nil
}

func getDriver(L *lua.LState) *Driver {
	ud, ok := L.GetGlobal(driverGlobal).(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	d, ok := ud.Value.(*Driver)
	if !ok {
		panic("driver not right type")
	}
	return d
}

// checkEvent accepts an event name or a raw discriminant. Raw numbers are
// passed through unchecked so scripts can exercise the adapter's handling
// of unknown events.
func checkEvent(L *lua.LState, n int) protocol.Event {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		return protocol.Event(int(v))
	case lua.LString:
		ev, err := protocol.ParseEvent(string(v))
		if err != nil {
			L.RaiseError("%v", err)
		}
		return ev
	}
	L.ArgError(n, "event name or number expected")
	return 0
}

func Push(L *lua.LState) int {
	d := getDriver(L)
	ev := checkEvent(L, 1)
	tbl := L.OptTable(2, L.NewTable())
	f, err := frameFromTable(ev, tbl)
	if err != nil {
		L.RaiseError("%s: %v", ev, err)
	}
	L.Push(lua.LBool(d.adapter.Call(ev, f)))
	return 1
}

func Poll(L *lua.LState) int {
	d := getDriver(L)
	ev := checkEvent(L, 1)
	if !ev.IsPoll() {
		L.ArgError(1, ev.String()+" is not a poll event")
	}
	f := &protocol.Frame{}
	if !d.adapter.Call(ev, f) {
		L.Push(lua.LFalse)
		return 1
	}
	n := 1
	if ev == protocol.CheckPlay {
		n = 2
	}
	parts, err := f.Strings(n)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LTrue)
	for _, p := range parts {
		L.Push(lua.LString(p))
	}
	return 1 + len(parts)
}

func Sleep(L *lua.LState) int {
	d := getDriver(L)
	ms := L.CheckInt(1)
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
	case <-d.ctx.Done():
		L.RaiseError("cancelled")
	case <-d.adapter.Done():
	}
	return 0
}

func Alive(L *lua.LState) int {
	d := getDriver(L)
	select {
	case <-d.adapter.Done():
		L.Push(lua.LFalse)
	default:
		L.Push(lua.LTrue)
	}
	return 1
}

// View returns the session's current view as a table.
func View(L *lua.LState) int {
	d := getDriver(L)
	bts, err := json.Marshal(d.adapter.Session().View())
	if err != nil {
		L.RaiseError("%v", err)
	}
	v, err := luajson.Decode(L, bts)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(v)
	return 1
}

func StandardBonuses(L *lua.LState) int {
	L.Push(placementTable(L, board.StandardLayout()))
	return 1
}

func Log(L *lua.LState) int {
	log.Info().Str("script", L.CheckString(1)).Msg("engine")
	return 0
}

func placementTable(L *lua.LState, ps []board.Placement) *lua.LTable {
	rows, cols := L.NewTable(), L.NewTable()
	letters := make([]byte, len(ps))
	for i, p := range ps {
		rows.Append(lua.LNumber(p.Row))
		cols.Append(lua.LNumber(p.Col))
		letters[i] = p.Letter
	}
	t := L.NewTable()
	t.RawSetString("rows", rows)
	t.RawSetString("cols", cols)
	t.RawSetString("letters", lua.LString(letters))
	return t
}

func intList(tbl *lua.LTable, key string) ([]int, bool, error) {
	lv := tbl.RawGetString(key)
	if lv == lua.LNil {
		return nil, false, nil
	}
	lt, ok := lv.(*lua.LTable)
	if !ok {
		return nil, true, fmt.Errorf("%s must be an array", key)
	}
	out := []int{}
	var err error
	lt.ForEach(func(_, v lua.LValue) {
		n, ok := v.(lua.LNumber)
		if !ok && err == nil {
			err = fmt.Errorf("%s must hold numbers", key)
		}
		out = append(out, int(n))
	})
	return out, true, err
}

// frameFromTable builds the inbound frame for ev. Fields: letters, rows,
// cols, score, accepted, message, names, scores.
func frameFromTable(ev protocol.Event, tbl *lua.LTable) (*protocol.Frame, error) {
	f := &protocol.Frame{}
	if s, ok := tbl.RawGetString("score").(lua.LNumber); ok {
		f.Score = int(s)
	}
	f.Accepted = lua.LVAsBool(tbl.RawGetString("accepted"))
	letters := lua.LVAsString(tbl.RawGetString("letters"))

	rows, hasRows, err := intList(tbl, "rows")
	if err != nil {
		return nil, err
	}
	if hasRows {
		cols, _, err := intList(tbl, "cols")
		if err != nil {
			return nil, err
		}
		if len(cols) != len(rows) || len(letters) != len(rows) {
			return nil, fmt.Errorf("rows, cols and letters differ in length")
		}
		ps := make([]board.Placement, len(rows))
		for i := range rows {
			ps[i] = board.Placement{Row: rows[i], Col: cols[i], Letter: letters[i]}
		}
		return f, f.SetPlacements(ps)
	}

	if lv, ok := tbl.RawGetString("names").(*lua.LTable); ok {
		names := []string{}
		lv.ForEach(func(_, v lua.LValue) { names = append(names, lua.LVAsString(v)) })
		scores, _, err := intList(tbl, "scores")
		if err != nil {
			return nil, err
		}
		if scores == nil {
			scores = make([]int, len(names))
		}
		return f, f.SetPlayers(names, scores)
	}

	if ev == protocol.ConfirmPlay {
		return f, f.SetText(lua.LVAsString(tbl.RawGetString("message")))
	}
	return f, f.SetText(letters)
}
