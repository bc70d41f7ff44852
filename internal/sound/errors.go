package sound

import (
	"errors"
	"fmt"
)

// Sentinel errors for the audio engine.
var (
	// ErrClosed is returned when Close is called on a closed engine.
	ErrClosed = errors.New("sound engine is closed")

	// ErrNoPlayer is returned when no external player command is available.
	ErrNoPlayer = errors.New("no audio player found")
)

// PlayError wraps a failure to play one sound.
type PlayError struct {
	// Kind is the sound that failed.
	Kind Kind

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PlayError) Error() string {
	return "play " + e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PlayError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic raised by a player.
type PanicError struct {
	Kind  Kind
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("player panic on %s: %v", e.Kind, e.Value)
}
