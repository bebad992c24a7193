package game

import (
	"fmt"
)

type playerState struct {
	name   string
	points int
	turns  int
}

func newPlayerState(name string, points int) *playerState {
	return &playerState{name: name, points: points}
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%20v %4v", onturn, p.name, p.points)
}

// playerStates is the roster. Order is turn order and the head is always
// the player on turn.
type playerStates []*playerState

func (p playerStates) active() *playerState {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// rotate moves the player on turn to the back of the roster.
func (p playerStates) rotate() {
	if len(p) < 2 {
		return
	}
	head := p[0]
	copy(p, p[1:])
	p[len(p)-1] = head
}

// score credits the player on turn and passes the turn. It returns the
// player who scored, or nil with no roster.
func (p playerStates) score(points int) *playerState {
	a := p.active()
	if a == nil {
		return nil
	}
	a.points += points
	a.turns++
	p.rotate()
	return a
}
