package protocol

import (
	"fmt"

	"github.com/domino14/xwordclient/board"
	"github.com/domino14/xwordclient/common"
)

// BufferSize is the capacity of each Frame array.
const BufferSize = 128

// A Frame carries one call's payload in both directions. The engine owns
// it and sizes it; strings in it are length-prefixed bytes, never
// terminated.
//
// For placement events Count entries of Rows, Cols and Letters line up.
// For outbound payloads Rows holds the length of each string and Letters
// holds the strings back to back.
type Frame struct {
	Count    int
	Score    int
	Accepted bool
	Rows     [BufferSize]uint32
	Cols     [BufferSize]uint32
	Letters  [BufferSize]byte
}

// Reset zeroes the frame for reuse.
func (f *Frame) Reset() {
	*f = Frame{}
}

func (f *Frame) checkCount() error {
	if f.Count < 0 || f.Count > BufferSize {
		return fmt.Errorf("%w: frame count %d outside 0..%d", common.ErrIllegalState,
			f.Count, BufferSize)
	}
	return nil
}

// Placements reads Count (row, col, letter) entries.
func (f *Frame) Placements() ([]board.Placement, error) {
	if err := f.checkCount(); err != nil {
		return nil, err
	}
	ps := make([]board.Placement, f.Count)
	for i := range ps {
		ps[i] = board.Placement{Row: int(f.Rows[i]), Col: int(f.Cols[i]), Letter: f.Letters[i]}
	}
	return ps, nil
}

// SetPlacements writes placements for an inbound event.
func (f *Frame) SetPlacements(ps []board.Placement) error {
	if len(ps) > BufferSize {
		return fmt.Errorf("%w: %d placements", common.ErrBufferOverflow, len(ps))
	}
	for i, p := range ps {
		if p.Row < 0 || p.Col < 0 {
			return fmt.Errorf("%w: negative coordinate (%d, %d)", common.ErrIllegalState, p.Row, p.Col)
		}
		f.Rows[i] = uint32(p.Row)
		f.Cols[i] = uint32(p.Col)
		f.Letters[i] = p.Letter
	}
	f.Count = len(ps)
	return nil
}

// Text reads Count bytes of Letters.
func (f *Frame) Text() (string, error) {
	if err := f.checkCount(); err != nil {
		return "", err
	}
	return string(f.Letters[:f.Count]), nil
}

// SetText writes an inbound string such as an error message.
func (f *Frame) SetText(s string) error {
	if len(s) > BufferSize {
		return fmt.Errorf("%w: %d bytes of text", common.ErrBufferOverflow, len(s))
	}
	f.Count = copy(f.Letters[:], s)
	return nil
}

// Players reads a GAME_INIT roster: Count names whose byte lengths are in
// Rows, concatenated in Letters, with scores in Cols.
func (f *Frame) Players() ([]string, []int, error) {
	if err := f.checkCount(); err != nil {
		return nil, nil, err
	}
	names := make([]string, f.Count)
	scores := make([]int, f.Count)
	off := 0
	for i := 0; i < f.Count; i++ {
		n := int(f.Rows[i])
		if off+n > BufferSize {
			return nil, nil, fmt.Errorf("%w: player names overrun the frame", common.ErrIllegalState)
		}
		names[i] = string(f.Letters[off : off+n])
		scores[i] = int(int32(f.Cols[i]))
		off += n
	}
	return names, scores, nil
}

// SetPlayers writes a GAME_INIT roster.
func (f *Frame) SetPlayers(names []string, scores []int) error {
	if len(names) != len(scores) {
		return fmt.Errorf("%w: %d names but %d scores", common.ErrIllegalState, len(names), len(scores))
	}
	if err := f.PutStrings(names...); err != nil {
		return err
	}
	for i, s := range scores {
		f.Cols[i] = uint32(int32(s))
	}
	f.Count = len(names)
	return nil
}

// PutStrings writes length-prefixed strings: the length of part i goes in
// Rows[i] and the bytes follow each other in Letters. Count is set to the
// total byte length. Nothing is written if the parts do not fit.
func (f *Frame) PutStrings(parts ...string) error {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if len(parts) > BufferSize || total > BufferSize {
		return fmt.Errorf("%w: %d strings, %d bytes", common.ErrBufferOverflow, len(parts), total)
	}
	off := 0
	for i, p := range parts {
		f.Rows[i] = uint32(len(p))
		off += copy(f.Letters[off:], p)
	}
	f.Count = total
	return nil
}

// Strings reads n length-prefixed strings written by PutStrings.
func (f *Frame) Strings(n int) ([]string, error) {
	if n < 0 || n > BufferSize {
		return nil, fmt.Errorf("%w: %d strings", common.ErrIllegalState, n)
	}
	out := make([]string, n)
	off := 0
	for i := 0; i < n; i++ {
		l := int(f.Rows[i])
		if off+l > BufferSize {
			return nil, fmt.Errorf("%w: string %d overruns the frame", common.ErrIllegalState, i)
		}
		out[i] = string(f.Letters[off : off+l])
		off += l
	}
	return out, nil
}
