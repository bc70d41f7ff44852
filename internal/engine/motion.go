package engine

import "unicode"

// Cursor motion. Every motion is a no-op at the document boundaries.

// MoveLeft moves the cursor one character left.
func (e *Engine) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// MoveRight moves the cursor one character right.
func (e *Engine) MoveRight() {
	if e.cursor < e.doc.LenChars() {
		e.cursor++
	}
}

// MoveUp moves to the previous row, keeping the column where the row is
// long enough.
func (e *Engine) MoveUp() {
	col, row := e.CursorPosition()
	if row == 0 {
		return
	}
	e.moveToRow(row-1, col)
}

// MoveDown moves to the next row, keeping the column where the row is long
// enough. It reports true whenever the move crosses into the next page,
// whether or not that page was visited before, and raises the page state
// when the new page is the highest reached.
func (e *Engine) MoveDown() bool {
	col, row := e.CursorPosition()
	if row+1 >= e.doc.LineCount() {
		return false
	}
	before := e.CurrentPage()
	e.moveToRow(row+1, col)
	e.advancePage()
	return e.CurrentPage() > before
}

// MoveLineStart moves to the first character of the current line.
func (e *Engine) MoveLineStart() {
	_, row := e.CursorPosition()
	e.cursor = e.doc.LineToChar(row)
}

// MoveLineEnd moves to the end of the current line, before its terminator.
func (e *Engine) MoveLineEnd() {
	_, row := e.CursorPosition()
	e.cursor = e.doc.LineToChar(row) + e.contentLen(row)
}

// MoveWordLeft skips whitespace left of the cursor, then the run of
// non-whitespace before it, stopping at the start of that run.
func (e *Engine) MoveWordLeft() {
	i := e.cursor
	for i > 0 && e.isSpaceAt(i-1) {
		i--
	}
	for i > 0 && !e.isSpaceAt(i-1) {
		i--
	}
	e.cursor = i
}

// MoveWordRight skips the rest of the current non-whitespace run, then the
// whitespace after it, stopping on the next non-whitespace character.
func (e *Engine) MoveWordRight() {
	n := e.doc.LenChars()
	i := e.cursor
	for i < n && !e.isSpaceAt(i) {
		i++
	}
	for i < n && e.isSpaceAt(i) {
		i++
	}
	e.cursor = i
}

func (e *Engine) moveToRow(row, col int) {
	e.cursor = e.doc.LineToChar(row) + min(col, e.contentLen(row))
}

// contentLen is the length of a line without its terminator. A "\r\n"
// terminator counts as a whole so the cursor never lands inside it.
func (e *Engine) contentLen(row int) int {
	n := e.doc.LineLen(row)
	if row+1 < e.doc.LineCount() {
		n--
		if n > 0 {
			if r, ok := e.doc.CharAt(e.doc.LineToChar(row) + n - 1); ok && r == '\r' {
				n--
			}
		}
	}
	return n
}

func (e *Engine) isSpaceAt(i int) bool {
	r, ok := e.doc.CharAt(i)
	return ok && unicode.IsSpace(r)
}
