package engine

import "errors"

// ErrInvalidUTF8 is returned by ReadFrom when the input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("document is not valid UTF-8")
