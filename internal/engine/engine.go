package engine

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dshills/clack/internal/config"
	"github.com/dshills/clack/internal/engine/rope"
)

// InsertResult reports the outcome of InsertChar.
type InsertResult uint8

const (
	// Inserted means the character was added below the bell column.
	Inserted InsertResult = iota
	// MarginWarning means the character was added and the line now
	// reaches the bell column exactly.
	MarginWarning
	// MarginBlocked means the line was already at the bell column and
	// nothing changed.
	MarginBlocked
)

// String returns a human-readable name for the result.
func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case MarginWarning:
		return "margin-warning"
	case MarginBlocked:
		return "margin-blocked"
	default:
		return fmt.Sprintf("InsertResult(%d)", r)
	}
}

// Engine owns the document and the cursor.
type Engine struct {
	doc    rope.Rope
	cursor int

	typewriter config.TypewriterConfig

	// revision increases on every mutation; counts are keyed by it.
	revision uint64
	counts   countCache

	lastPage int
	modified bool

	initContent string
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		typewriter: config.DefaultTypewriterConfig(),
		lastPage:   1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.doc = rope.FromString(e.initContent)
	e.initContent = ""
	return e
}

// ============================================================================
// Queries
// ============================================================================

// Text returns the full document.
func (e *Engine) Text() string {
	return e.doc.String()
}

// Len returns the document length in characters.
func (e *Engine) Len() int {
	return e.doc.LenChars()
}

// LineCount returns the number of logical lines; at least 1.
func (e *Engine) LineCount() int {
	return e.doc.LineCount()
}

// LineText returns line i without its terminator.
func (e *Engine) LineText(i int) string {
	return e.doc.LineText(i)
}

// Cursor returns the cursor as an absolute character offset.
func (e *Engine) Cursor() int {
	return e.cursor
}

// SetCursor moves the cursor, clamping idx to [0, Len()].
// The page state is not lowered.
func (e *Engine) SetCursor(idx int) {
	e.cursor = clamp(idx, 0, e.doc.LenChars())
}

// CursorPosition returns the cursor's logical column and row. A cursor
// sitting on a line terminator belongs to the end of that line.
func (e *Engine) CursorPosition() (col, row int) {
	row = e.doc.CharToLine(e.cursor)
	return e.cursor - e.doc.LineToChar(row), row
}

// Revision returns a counter that changes on every mutation.
func (e *Engine) Revision() uint64 {
	return e.revision
}

// Modified reports whether the document changed since it was loaded or
// last marked saved.
func (e *Engine) Modified() bool {
	return e.modified
}

// MarkSaved clears the modified flag.
func (e *Engine) MarkSaved() {
	e.modified = false
}

// Typewriter returns the margin and pagination rules in effect.
func (e *Engine) Typewriter() config.TypewriterConfig {
	return e.typewriter
}

// ============================================================================
// Mutations
// ============================================================================

// InsertChar types r at the cursor subject to the bell column. The line
// length checked includes its terminator.
func (e *Engine) InsertChar(r rune) InsertResult {
	_, row := e.CursorPosition()
	bell := e.typewriter.BellColumn
	if e.doc.LineLen(row) >= bell {
		return MarginBlocked
	}

	e.insert(string(r))
	if e.doc.LineLen(row) == bell {
		return MarginWarning
	}
	return Inserted
}

// InsertNewline inserts a line terminator at the cursor. It is never
// subject to the bell column.
func (e *Engine) InsertNewline() {
	e.insert("\n")
}

// DeleteBackward removes the character before the cursor.
// It reports false at the start of the document.
func (e *Engine) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	e.doc = e.doc.Delete(e.cursor-1, e.cursor)
	e.cursor--
	e.touch()
	return true
}

// DeleteForward removes the character at the cursor without moving it.
// It reports false at the end of the document.
func (e *Engine) DeleteForward() bool {
	if e.cursor >= e.doc.LenChars() {
		return false
	}
	e.doc = e.doc.Delete(e.cursor, e.cursor+1)
	e.touch()
	return true
}

func (e *Engine) insert(text string) {
	e.doc = e.doc.Insert(e.cursor, text)
	e.cursor += utf8.RuneCountInString(text)
	e.touch()
}

func (e *Engine) touch() {
	e.revision++
	e.modified = true
}

// ============================================================================
// Persistence
// ============================================================================

// ReadFrom replaces the document with UTF-8 text read from r. The cursor
// returns to the start, the page state resets and the document is
// unmodified. On error the engine is left unchanged.
func (e *Engine) ReadFrom(r io.Reader) (int64, error) {
	doc, err := rope.FromReader(r)
	if err != nil {
		return 0, err
	}
	for it := doc.Chunks(); it.Next(); {
		if !utf8.ValidString(it.Chunk().String()) {
			return 0, ErrInvalidUTF8
		}
	}

	e.doc = doc
	e.cursor = 0
	e.lastPage = 1
	e.revision++
	e.modified = false
	return int64(doc.LenBytes()), nil
}

// WriteTo streams the document chunks to w unchanged.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	return e.doc.WriteTo(w)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
