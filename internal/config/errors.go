package config

import (
	"errors"
	"fmt"
)

// Errors describing rejected preference values.
var (
	// ErrOutOfRange indicates a numeric setting below its minimum.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownTheme indicates a theme name that is not built in.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrUnknownLevel indicates an unrecognized log level.
	ErrUnknownLevel = errors.New("unknown log level")

	// ErrTypeMismatch indicates a value of the wrong TOML type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// FieldError reports a single setting that was replaced by its default.
type FieldError struct {
	// Path is the dotted setting path, e.g. "layout.text_width".
	Path string
	// Value is the rejected value.
	Value any
	// Err is the reason.
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (value: %v), using default", e.Path, e.Err, e.Value)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}
