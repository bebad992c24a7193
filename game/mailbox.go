package game

// The drains below serve the engine's polls. Each hands the waiting request
// to deliver under the lock and reports whether one was present. If deliver
// fails the request stays in its slot for the next poll.

// DrainPlay delivers the composed play command and the raw tray the engine
// should re-seed from. A command is delivered once; it stays outstanding
// until ConfirmPlay.
func (s *Session) DrainPlay(deliver func(command, raw string) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playCommand == "" || s.playDelivered {
		return false, nil
	}
	if err := deliver(s.playCommand, s.playRaw); err != nil {
		return false, err
	}
	s.playDelivered = true
	return true, nil
}

// DrainHint delivers a hint request with the current tray. The request
// stays open until GiveHint, but is only delivered once.
func (s *Session) DrainHint(deliver func(tray string) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hintRequested || s.hintDelivered {
		return false, nil
	}
	if err := deliver(s.tray.Wire()); err != nil {
		return false, err
	}
	s.hintDelivered = true
	return true, nil
}

// DrainSave delivers the save filename and empties the slot.
func (s *Session) DrainSave(deliver func(filename string) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveRequest == "" {
		return false, nil
	}
	if err := deliver(s.saveRequest); err != nil {
		return false, err
	}
	s.saveRequest = ""
	s.notify()
	return true, nil
}
