package game

import (
	"bytes"
	"fmt"
	"strings"
)

func splitSubN(s string, n int) []string {
	sub := ""
	subs := []string{}

	runes := bytes.Runes([]byte(s))
	l := len(runes)
	for i, r := range runes {
		sub = sub + string(r)
		if (i+1)%n == 0 {
			subs = append(subs, sub)
			sub = ""
		} else if (i + 1) == l {
			subs = append(subs, sub)
		}
	}

	return subs
}

func addText(lines []string, row int, hpad int, text string) {
	maxTextSize := 42
	sp := splitSubN(text, maxTextSize)

	for _, chunk := range sp {
		if row >= len(lines) {
			return
		}
		lines[row] = lines[row] + strings.Repeat(" ", hpad) + chunk
		row++
	}
}

// toDisplayText must be called with the lock held.
func (s *Session) toDisplayText() string {
	bt := s.board.ToDisplayText()
	// Insert players, tray and messages to the right of the board.
	bts := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 1

	for pi, p := range s.players {
		addText(bts, vpadding+pi, hpadding, p.stateString(pi == 0))
	}
	vpadding += len(s.players) + 1

	trayStr := strings.Join(strings.Split(s.tray.String(), ""), " ")
	addText(bts, vpadding, hpadding, "Tray: "+trayStr)
	if s.held != noneHeld {
		addText(bts, vpadding+1, hpadding, fmt.Sprintf("Holding slot %d", s.held))
	}
	vpadding += 3

	if s.playCommand != "" {
		addText(bts, vpadding, hpadding, "Waiting on engine: "+s.playCommand)
	} else if !s.pending.Empty() {
		addText(bts, vpadding, hpadding, fmt.Sprintf("%d tiles placed", s.pending.Len()))
	}
	vpadding += 2

	for i, msg := range s.messages {
		addText(bts, vpadding+i, hpadding, msg)
	}

	if s.godMode {
		bts = append(bts, "god mode")
	}
	return strings.Join(bts, "\n")
}
