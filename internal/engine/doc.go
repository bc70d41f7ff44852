// Package engine is the text buffer and cursor engine of Clack.
//
// An Engine owns the document (a rope) and a single cursor expressed as an
// absolute character offset. Every coordinate the rest of the editor uses
// is derived from those two values:
//
//	col, row := e.CursorPosition()
//	page := e.CurrentPage()
//
// The engine enforces the typewriter rules: a line refuses characters once
// it reaches the bell column, and crossing into a new page is reported once
// so the caller can play a feed effect.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. The editor mutates and reads it
// from the event loop goroutine only.
package engine
