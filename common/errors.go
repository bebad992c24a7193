// Package common holds the error kinds shared by every layer of the client.
package common

import "errors"

var (
	// ErrIllegalState is an operation attempted against an invariant, such as
	// placing onto a fixed square or picking up while already holding a tile.
	// The two sides disagree about state and it cannot be patched locally.
	ErrIllegalState = errors.New("illegal state")
	// ErrNotStraightLine means the pending tiles do not share a row or column.
	ErrNotStraightLine = errors.New("tiles are not in a straight line")
	// ErrEngineRejected wraps the engine's message for a refused play.
	ErrEngineRejected = errors.New("play rejected")
	// ErrUnrecognizedEvent is an event discriminant outside the known set.
	ErrUnrecognizedEvent = errors.New("unrecognized event")
	// ErrUnrecognizedBonus is a board-init code that is neither a bonus
	// nor a letter.
	ErrUnrecognizedBonus = errors.New("unrecognized bonus")
	// ErrBufferOverflow is a payload that does not fit the caller's buffers.
	ErrBufferOverflow = errors.New("payload exceeds buffer capacity")
	// ErrRefused is a user request that is not allowed right now.
	ErrRefused = errors.New("request refused")
)

// IsFatal returns true for errors that mean the session can no longer
// continue: contract violations from either side.
func IsFatal(err error) bool {
	return errors.Is(err, ErrIllegalState) ||
		errors.Is(err, ErrUnrecognizedEvent) ||
		errors.Is(err, ErrUnrecognizedBonus)
}
