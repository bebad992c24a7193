// Package game holds the client's session state: the board, the tray, the
// move being built, the roster, and the requests waiting for the engine.
//
// Two sources act on a Session. The engine pushes events and polls for
// requests from its own goroutine; the user interacts from the UI's
// goroutine. A single mutex serialises both, so every event is applied
// whole and in a total order.
package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
	"github.com/domino14/xwordclient/move"
	"github.com/domino14/xwordclient/tray"
)

const (
	DefaultBoardDim     = 15
	DefaultHintDuration = 3 * time.Second
	DefaultMaxMessages  = 10
)

// noneHeld is the held-slot value when the pointer holds no tile.
const noneHeld = -1

// An Observer is told about every visible change. Update is called with
// the session lock held; it must not call back into the Session.
type Observer interface {
	Update(v View)
}

// Session is the whole client state for one game.
type Session struct {
	mu sync.Mutex

	board   *board.GameBoard
	tray    *tray.Tray
	pending *move.Pending
	players playerStates

	godMode bool
	// held is the tray slot whose tile is on the pointer, or noneHeld.
	held int

	// Outgoing mailboxes, one request of each kind at most.
	playCommand   string
	playRaw       string
	playDelivered bool
	hintRequested bool
	hintDelivered bool
	saveRequest   string

	messages    []string
	maxMessages int

	hintDuration time.Duration
	sleep        func(time.Duration)

	observers []Observer
}

// NewSession creates a session with an empty dim x dim board. The board
// takes no interaction until the engine initialises it.
func NewSession(dim int) *Session {
	if dim <= 0 {
		dim = DefaultBoardDim
	}
	return &Session{
		board:        board.MakeBoard(dim),
		tray:         tray.New(),
		pending:      move.NewPending(),
		held:         noneHeld,
		maxMessages:  DefaultMaxMessages,
		hintDuration: DefaultHintDuration,
		sleep:        time.Sleep,
	}
}

// SetHintDuration sets how long a hint stays on the board.
func (s *Session) SetHintDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hintDuration = d
}

// SetMaxMessages bounds the message log.
func (s *Session) SetMaxMessages(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.maxMessages = n
	s.trimMessages()
}

// SetGodMode turns the elevated mode on or off. It unlocks hints and tray
// editing, and forces plays through the engine's dictionary.
func (s *Session) SetGodMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.godMode == on {
		return
	}
	s.godMode = on
	log.Info().Bool("god-mode", on).Msg("mode changed")
	s.notify()
}

func (s *Session) GodMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.godMode
}

// AddObserver registers o and sends it the current view.
func (s *Session) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
	o.Update(s.view())
}

// View returns a snapshot of the visible state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Messages returns the message log, newest first.
func (s *Session) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// ToDisplayText renders the session for a plain terminal.
func (s *Session) ToDisplayText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toDisplayText()
}

// notify must be called with the lock held.
func (s *Session) notify() {
	if len(s.observers) == 0 {
		return
	}
	v := s.view()
	for _, o := range s.observers {
		o.Update(v)
	}
}

func (s *Session) addMessage(msg string) {
	log.Info().Str("msg", msg).Msg("session")
	s.messages = append([]string{msg}, s.messages...)
	s.trimMessages()
}

func (s *Session) trimMessages() {
	if len(s.messages) > s.maxMessages {
		s.messages = s.messages[:s.maxMessages]
	}
}

// refuse records a user-visible refusal and returns it as an error.
func (s *Session) refuse(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	s.addMessage(msg)
	return fmt.Errorf("%w: %s", common.ErrRefused, msg)
}
