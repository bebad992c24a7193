// Package move builds the play command the client proposes to the engine
// from the squares touched during the current turn.
package move

import (
	"fmt"
	"regexp"
	"strconv"
)

// PlayedThroughMarker stands in the word for a letter already on the board.
const PlayedThroughMarker = '_'

// A Play is a proposed placement move. Row and Col are engine coordinates
// of the first letter of Word.
type Play struct {
	Row        int
	Col        int
	Word       string
	Horizontal bool
	// Force asks the engine to take the word even if it does not know it.
	Force bool
}

var rePlay = regexp.MustCompile(`^play (?P<row>[0-9]+) (?P<col>[0-9]+) (?P<word>\S+) (?P<horiz>[yn]) (?P<force>[yn])$`)

func yn(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// String is the wire command: "play <row> <col> <word> <y/n> <y/n>".
func (p Play) String() string {
	return fmt.Sprintf("play %d %d %s %s %s", p.Row, p.Col, p.Word, yn(p.Horizontal), yn(p.Force))
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (p Play) ShortDescription() string {
	dir := "across"
	if !p.Horizontal {
		dir = "down"
	}
	return fmt.Sprintf("%d,%d %s %s", p.Row, p.Col, dir, p.Word)
}

// TilesPlayed returns the number of tiles the play takes from the tray.
func (p Play) TilesPlayed() int {
	n := 0
	for _, r := range p.Word {
		if r != PlayedThroughMarker {
			n++
		}
	}
	return n
}

// ParsePlay reads a command produced by Play.String.
func ParsePlay(cmd string) (Play, error) {
	m := rePlay.FindStringSubmatch(cmd)
	if m == nil {
		return Play{}, fmt.Errorf("play command not formatted properly: %q", cmd)
	}
	row, err := strconv.Atoi(m[rePlay.SubexpIndex("row")])
	if err != nil {
		return Play{}, err
	}
	col, err := strconv.Atoi(m[rePlay.SubexpIndex("col")])
	if err != nil {
		return Play{}, err
	}
	return Play{
		Row:        row,
		Col:        col,
		Word:       m[rePlay.SubexpIndex("word")],
		Horizontal: m[rePlay.SubexpIndex("horiz")] == "y",
		Force:      m[rePlay.SubexpIndex("force")] == "y",
	}, nil
}

// A Placement is one tile a play adds, in engine coordinates.
type Placement struct {
	Row    int
	Col    int
	Letter rune
}

// Placements expands the play into every tile it adds, skipping
// played-through squares.
func (p Play) Placements() []Placement {
	out := []Placement{}
	i := 0
	for _, r := range p.Word {
		if r != PlayedThroughMarker {
			pl := Placement{Row: p.Row, Col: p.Col + i, Letter: r}
			if !p.Horizontal {
				pl.Row, pl.Col = p.Row+i, p.Col
			}
			out = append(out, pl)
		}
		i++
	}
	return out
}
