package protocol

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/xwordclient/common"
	"github.com/domino14/xwordclient/game"
)

// ErrTerminated is returned by Err after the session has ended for a reason
// other than a fatal event, for instance Close.
var ErrTerminated = errors.New("session terminated")

// Adapter translates engine calls into Session operations. It is the only
// thing the engine talks to.
type Adapter struct {
	session *game.Session

	once sync.Once
	done chan struct{}
	mu   sync.Mutex
	err  error
}

func NewAdapter(s *game.Session) *Adapter {
	return &Adapter{
		session: s,
		done:    make(chan struct{}),
	}
}

// Session returns the session this adapter drives.
func (a *Adapter) Session() *game.Session {
	return a.session
}

// Done is closed once the session has been terminated.
func (a *Adapter) Done() <-chan struct{} {
	return a.done
}

// Err returns why the session was terminated, or nil while it is live.
func (a *Adapter) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Close terminates the session from the client side.
func (a *Adapter) Close() {
	a.terminate(ErrTerminated)
}

func (a *Adapter) terminate(err error) {
	a.once.Do(func() {
		a.mu.Lock()
		a.err = err
		a.mu.Unlock()
		close(a.done)
	})
}

// Call handles one engine call. For a push event it returns true if the
// event was applied. For a poll it returns true if a request was present
// and has been written into f.
//
// No error or panic escapes Call. A fatal error terminates the session and
// every later call returns false.
func (a *Adapter) Call(ev Event, f *Frame) (ok bool) {
	select {
	case <-a.done:
		log.Debug().Stringer("event", ev).Msg("call after termination")
		return false
	default:
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: panic handling %s: %v", common.ErrIllegalState, ev, r)
			log.Error().Err(err).Msg("engine call")
			a.terminate(err)
			ok = false
		}
	}()

	ok, err := a.dispatch(ev, f)
	if err != nil {
		if common.IsFatal(err) {
			log.Error().Err(err).Stringer("event", ev).Msg("fatal protocol error, terminating session")
			a.terminate(err)
		} else {
			log.Warn().Err(err).Stringer("event", ev).Msg("engine call failed")
		}
		return false
	}
	return ok
}

func (a *Adapter) dispatch(ev Event, f *Frame) (bool, error) {
	if !ev.Valid() {
		return false, fmt.Errorf("%w: discriminant %d", common.ErrUnrecognizedEvent, int(ev))
	}
	if f == nil {
		return false, fmt.Errorf("%w: %s called with no frame", common.ErrIllegalState, ev)
	}
	log.Debug().Stringer("event", ev).Int("count", f.Count).Msg("engine call")

	switch ev {
	case Tiles:
		text, err := f.Text()
		if err != nil {
			return false, err
		}
		return true, a.session.SetTray([]byte(text))

	case Play, AIPlay:
		ps, err := f.Placements()
		if err != nil {
			return false, err
		}
		return true, a.session.ApplyPlay(ps, ev == AIPlay, f.Score)

	case BoardInit:
		ps, err := f.Placements()
		if err != nil {
			return false, err
		}
		return true, a.session.InitBoard(ps)

	case GameInit:
		names, scores, err := f.Players()
		if err != nil {
			return false, err
		}
		return true, a.session.InitPlayers(names, scores)

	case ConfirmPlay:
		msg, err := f.Text()
		if err != nil {
			return false, err
		}
		return true, a.session.ConfirmPlay(f.Accepted, f.Score, msg)

	case GiveHint:
		ps, err := f.Placements()
		if err != nil {
			return false, err
		}
		return true, a.session.GiveHint(ps)

	case CheckPlay:
		return a.session.DrainPlay(func(cmd, raw string) error {
			return f.PutStrings(cmd, raw)
		})

	case CheckHint:
		return a.session.DrainHint(func(tray string) error {
			return f.PutStrings(tray)
		})

	case CheckSave:
		return a.session.DrainSave(func(filename string) error {
			return f.PutStrings(filename)
		})
	}
	// Valid() covers every case above.
	return false, fmt.Errorf("%w: %s", common.ErrUnrecognizedEvent, ev)
}
