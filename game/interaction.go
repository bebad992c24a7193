package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
	"github.com/domino14/xwordclient/tray"
)

// Clicks are not queued: a click that arrives while the session is busy
// (for instance while a hint is showing) is dropped and reported as not
// applied. Requests such as MakePlay wait for the lock instead.

// ClickTray handles a click on tray slot i. With nothing held it picks up
// the slot's tile; holding a tile it swaps the two slots and drops it.
func (s *Session) ClickTray(i int) (bool, error) {
	if !s.mu.TryLock() {
		log.Debug().Int("slot", i).Msg("tray click dropped, session busy")
		return false, nil
	}
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return true, err
	}
	if i < 0 || i >= tray.Size {
		return true, s.refuse("there is no tray slot %d", i)
	}

	if s.held == noneHeld {
		if s.tray.Slot(i).IsZero() {
			return true, nil
		}
		if err := s.pickup(i); err != nil {
			return true, err
		}
		s.notify()
		return true, nil
	}

	if err := s.tray.Swap(s.held, i); err != nil {
		return true, err
	}
	s.drop()
	s.notify()
	return true, nil
}

// ClickCell handles a click on the board square at engine coordinates
// (row, col). Holding a tile it places it on an empty square; with nothing
// held it retracts a pending tile back to the tray.
func (s *Session) ClickCell(row, col int) (bool, error) {
	if !s.mu.TryLock() {
		log.Debug().Int("row", row).Int("col", col).Msg("cell click dropped, session busy")
		return false, nil
	}
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return true, err
	}
	sq, err := s.board.SquareAt(row, col)
	if err != nil {
		return true, s.refuse("there is no square at %d, %d", row, col)
	}
	if sq.Fixed() {
		return true, nil
	}
	if s.playCommand != "" {
		return true, s.refuse("wait for the engine to answer the last play")
	}
	if s.hintRequested {
		return true, s.refuse("wait for the engine's hint before placing tiles")
	}

	switch {
	case s.held != noneHeld && sq.IsEmpty():
		err = s.place(sq)
	case s.held == noneHeld && !sq.IsEmpty():
		err = s.retract(sq)
	default:
		return true, nil
	}
	if err != nil {
		return true, err
	}
	s.notify()
	return true, nil
}

// EnterWildcardLetter gives the wildcard in tray slot i a letter.
func (s *Session) EnterWildcardLetter(i int, letter rune) (bool, error) {
	if !s.mu.TryLock() {
		return false, nil
	}
	defer s.mu.Unlock()
	if err := s.tray.SetWildcardLetter(i, letter); err != nil {
		if errors.Is(err, common.ErrRefused) {
			s.addMessage(err.Error())
		}
		return true, err
	}
	s.notify()
	return true, nil
}

// MakePlay composes the pending tiles into a play command and leaves it for
// the engine to collect. A held tile is dropped first. With no pending
// tiles it does nothing and returns "".
func (s *Session) MakePlay() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return "", err
	}
	if s.held != noneHeld {
		s.drop()
		s.notify()
	}
	if s.playCommand != "" {
		return "", s.refuse("a play is already waiting for the engine")
	}
	play, ok, err := s.pending.Build(s.godMode)
	if err != nil {
		s.addMessage(err.Error())
		s.notify()
		return "", err
	}
	if !ok {
		return "", nil
	}
	s.playCommand = play.String()
	s.playRaw = s.rawTray()
	s.playDelivered = false
	log.Debug().Str("command", s.playCommand).Str("raw", s.playRaw).Msg("play composed")
	s.notify()
	return s.playCommand, nil
}

// RequestHint asks the engine for a hint. It is silently ignored outside
// god mode, while tiles are pending, or when a hint is already on its way.
func (s *Session) RequestHint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.godMode || !s.pending.Empty() || s.hintRequested || !s.board.Initialized() {
		log.Debug().Bool("god-mode", s.godMode).Int("pending", s.pending.Len()).
			Msg("hint request ignored")
		return false
	}
	s.hintRequested = true
	s.hintDelivered = false
	s.notify()
	return true
}

// RequestSave asks the engine to save the game to filename. A later
// request replaces one not yet collected.
func (s *Session) RequestSave(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filename == "" {
		return s.refuse("save needs a filename")
	}
	s.saveRequest = filename
	s.notify()
	return nil
}

// EditTray overwrites tray slots in god mode, one letter at a time from
// the edit cursor. `-` types a wildcard.
func (s *Session) EditTray(letters string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.godMode {
		return s.refuse("tray editing needs god mode")
	}
	if !s.pending.Empty() || s.held != noneHeld {
		return s.refuse("take your tiles back before editing the tray")
	}
	var err error
	for _, r := range letters {
		if err = s.tray.Type(r); err != nil {
			s.addMessage(err.Error())
			break
		}
	}
	s.notify()
	return err
}

// Shuffle reorders the tray.
func (s *Session) Shuffle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held != noneHeld {
		return s.refuse("drop the tile you are holding first")
	}
	s.tray.Shuffle()
	s.notify()
	return nil
}

func (s *Session) ready() error {
	if !s.board.Initialized() {
		return s.refuse("the board is not set up yet")
	}
	return nil
}

func (s *Session) pickup(i int) error {
	if s.held != noneHeld {
		return fmt.Errorf("%w: already holding slot %d", common.ErrIllegalState, s.held)
	}
	s.held = i
	return nil
}

func (s *Session) drop() {
	s.held = noneHeld
}

// place moves the held tile onto sq and adds sq to the pending move. The
// tray slot and the square change together.
func (s *Session) place(sq *board.Square) error {
	from := s.held
	t, err := s.tray.Take(from)
	if err != nil {
		return err
	}
	if err := sq.PlaceTile(t, from); err != nil {
		// put it back so the tile is not lost
		_ = s.tray.SetSlot(from, t)
		return err
	}
	s.pending.Add(sq)
	s.drop()
	return nil
}

// retract returns a pending tile to its slot, or the first empty slot
// after it if that one has been filled since.
func (s *Session) retract(sq *board.Square) error {
	if !s.pending.Contains(sq) {
		return fmt.Errorf("%w: %v is not part of the pending move", common.ErrIllegalState, sq)
	}
	slot := sq.Origin()
	if slot == board.NoOrigin || !s.tray.Slot(slot).IsZero() {
		slot = s.tray.FirstEmptyIndexFrom(slot)
	}
	if slot < 0 {
		return fmt.Errorf("%w: no room on the tray for %v", common.ErrIllegalState, sq)
	}
	t, _, err := sq.RemoveTile()
	if err != nil {
		return err
	}
	if err := s.tray.SetSlot(slot, t); err != nil {
		return err
	}
	s.pending.Remove(sq)
	return nil
}

// rawTray is the rack as the engine should re-seed it: tray slots in order,
// with each empty slot filled by the pending tile that came from it.
// Pending tiles whose slot has been reused since go at the end.
func (s *Session) rawTray() string {
	bySlot := map[int]*board.Square{}
	for _, sq := range s.pending.Squares() {
		bySlot[sq.Origin()] = sq
	}
	used := map[*board.Square]bool{}
	raw := []rune{}
	for i, t := range s.tray.Slots() {
		if !t.IsZero() {
			raw = append(raw, t.Wire())
			continue
		}
		if sq, ok := bySlot[i]; ok {
			raw = append(raw, sq.Tile().Wire())
			used[sq] = true
		}
	}
	for _, sq := range s.pending.Squares() {
		if !used[sq] {
			raw = append(raw, sq.Tile().Wire())
		}
	}
	return string(raw)
}
