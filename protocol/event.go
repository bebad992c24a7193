// Package protocol is the boundary the engine calls across. The engine
// drives the client through a single synchronous entry point, Adapter.Call,
// passing an event discriminant and a fixed-capacity Frame.
package protocol

import (
	"fmt"
	"strings"

	"github.com/domino14/xwordclient/common"
)

// Event is the discriminant of an engine call. The set is closed: any
// other value ends the session.
type Event int

const (
	Tiles Event = iota
	Play
	BoardInit
	CheckPlay
	ConfirmPlay
	CheckHint
	GiveHint
	CheckSave
	GameInit
	AIPlay
)

var eventNames = map[Event]string{
	Tiles:       "TILES",
	Play:        "PLAY",
	BoardInit:   "BOARD_INIT",
	CheckPlay:   "CHECK_PLAY",
	ConfirmPlay: "CONFIRM_PLAY",
	CheckHint:   "CHECK_HINT",
	GiveHint:    "GIVE_HINT",
	CheckSave:   "CHECK_SAVE",
	GameInit:    "GAME_INIT",
	AIPlay:      "AI_PLAY",
}

func (e Event) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return fmt.Sprintf("EVENT(%d)", int(e))
}

// Valid returns true for the known events.
func (e Event) Valid() bool {
	_, ok := eventNames[e]
	return ok
}

// IsPoll returns true for the events that ask the client for a request.
func (e Event) IsPoll() bool {
	return e == CheckPlay || e == CheckHint || e == CheckSave
}

// ParseEvent looks an event up by name, case-insensitively.
func ParseEvent(name string) (Event, error) {
	u := strings.ToUpper(strings.TrimSpace(name))
	for e, n := range eventNames {
		if n == u {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", common.ErrUnrecognizedEvent, name)
}
