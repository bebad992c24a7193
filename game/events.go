package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
)

// The methods in this file apply events pushed by the engine. Each takes
// the lock for its whole body. An ErrIllegalState return means the engine
// and the client disagree about the game and the session cannot go on.

// SetTray replaces the tray with the engine's letters. The engine's tray is
// authoritative: pending tiles are taken off the board and a held tile is
// dropped.
func (s *Session) SetTray(letters []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, sq := range s.pending.Squares() {
		_, _, err := sq.RemoveTile()
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.pending.Clear()
	s.drop()
	s.tray.SetFromWire(letters)
	log.Debug().Str("tray", s.tray.String()).Msg("tray set")
	s.notify()
	return nil
}

// ApplyPlay puts an engine-made play on the board and fixes it. A scored
// play (the AI_PLAY event) also credits the player on turn and passes the
// turn; a legacy PLAY only shows the tiles.
func (s *Session) ApplyPlay(placements []board.Placement, scored bool, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range placements {
		sq, err := s.board.SquareAt(p.Row, p.Col)
		if err != nil {
			return err
		}
		t, ok := board.TileFromBoardLetter(p.Letter)
		if !ok {
			return fmt.Errorf("%w: play letter %q at (%d, %d)", common.ErrIllegalState,
				p.Letter, p.Row, p.Col)
		}
		if err := sq.PlaceTile(t, board.NoOrigin); err != nil {
			return err
		}
		if err := sq.Finalize(); err != nil {
			return err
		}
	}
	if scored {
		if p := s.players.score(score); p != nil {
			s.addMessage(fmt.Sprintf("%s scored %d", p.name, score))
		}
	}
	s.notify()
	return nil
}

// InitPlayers sets the roster. The first name is on turn.
func (s *Session) InitPlayers(names []string, scores []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) != len(scores) {
		return fmt.Errorf("%w: %d names but %d scores", common.ErrIllegalState,
			len(names), len(scores))
	}
	s.players = make(playerStates, len(names))
	for i := range names {
		s.players[i] = newPlayerState(names[i], scores[i])
	}
	log.Debug().Strs("players", names).Msg("roster set")
	s.notify()
	return nil
}

// InitBoard applies the bonus layout and any pre-filled letters. It may
// only happen once.
func (s *Session) InitBoard(layout []board.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefilled, err := s.board.Initialize(layout)
	if err != nil {
		return err
	}
	log.Debug().Int("prefilled", len(prefilled)).Msg("board initialized")
	s.notify()
	return nil
}

// ConfirmPlay applies the engine's answer to the last play. On acceptance
// the pending tiles are fixed and the player on turn is credited; on
// rejection they stay where they are so the user can adjust them.
func (s *Session) ConfirmPlay(accepted bool, score int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playCommand == "" {
		return fmt.Errorf("%w: confirmation with no play outstanding", common.ErrIllegalState)
	}
	s.playCommand = ""
	s.playRaw = ""
	s.playDelivered = false

	if !accepted {
		if message == "" {
			message = "the engine refused the play"
		}
		log.Debug().Err(fmt.Errorf("%w: %s", common.ErrEngineRejected, message)).Msg("confirm")
		s.addMessage(message)
		s.notify()
		return nil
	}

	for _, sq := range s.pending.Squares() {
		if err := sq.Finalize(); err != nil {
			return err
		}
	}
	s.pending.Clear()
	if p := s.players.score(score); p != nil {
		s.addMessage(fmt.Sprintf("%s scored %d", p.name, score))
	} else {
		log.Debug().Int("score", score).Msg("play accepted with no roster")
	}
	s.notify()
	return nil
}

// GiveHint shows the engine's suggested play on the board for the hint
// duration, then takes it away. Squares holding a pending tile are left
// alone. The lock is held throughout, so no click or request gets in while
// the hint is up.
func (s *Session) GiveHint(placements []board.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hintRequested {
		return fmt.Errorf("%w: hint given without a request", common.ErrIllegalState)
	}
	revealed := []*board.Square{}
	for _, p := range placements {
		sq, err := s.board.SquareAt(p.Row, p.Col)
		if err != nil {
			return err
		}
		t, ok := board.TileFromBoardLetter(p.Letter)
		if !ok {
			return fmt.Errorf("%w: hint letter %q at (%d, %d)", common.ErrIllegalState,
				p.Letter, p.Row, p.Col)
		}
		if !sq.IsEmpty() && !sq.Fixed() {
			// a tile of the user's that the engine has not seen
			log.Debug().Int("row", p.Row).Int("col", p.Col).Msg("hint square occupied, skipped")
			continue
		}
		if err := sq.Reveal(t.Face); err != nil {
			return err
		}
		revealed = append(revealed, sq)
	}
	s.notify()
	s.sleep(s.hintDuration)

	var errs []error
	for _, sq := range revealed {
		errs = append(errs, sq.Revert())
	}
	s.hintRequested = false
	s.hintDelivered = false
	s.notify()
	return errors.Join(errs...)
}
