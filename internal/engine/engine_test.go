package engine

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dshills/clack/internal/config"
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
	if e.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", e.LineCount())
	}
	if col, row := e.CursorPosition(); col != 0 || row != 0 {
		t.Errorf("CursorPosition() = (%d, %d), want (0, 0)", col, row)
	}
	if e.CurrentPage() != 1 || e.LastPage() != 1 {
		t.Errorf("pages = %d/%d, want 1/1", e.CurrentPage(), e.LastPage())
	}
	if e.Modified() {
		t.Error("new engine should not be modified")
	}
}

func TestNewWithContent(t *testing.T) {
	e := New(WithContent("héllo\nworld"))
	if e.Text() != "héllo\nworld" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.Len() != 11 {
		t.Errorf("Len() = %d, want 11", e.Len())
	}
	if e.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", e.Cursor())
	}
	if e.LineText(1) != "world" {
		t.Errorf("LineText(1) = %q, want world", e.LineText(1))
	}
}

func TestInsertChar(t *testing.T) {
	e := New()
	for _, r := range "héllo" {
		if got := e.InsertChar(r); got != Inserted {
			t.Fatalf("InsertChar(%q) = %v, want inserted", r, got)
		}
	}
	if e.Text() != "héllo" || e.Cursor() != 5 {
		t.Errorf("Text() = %q, Cursor() = %d", e.Text(), e.Cursor())
	}
	if !e.Modified() {
		t.Error("Modified() = false after insert")
	}
}

func TestInsertCharMidLine(t *testing.T) {
	e := New(WithContent("ac"))
	e.SetCursor(1)
	e.InsertChar('b')
	if e.Text() != "abc" || e.Cursor() != 2 {
		t.Errorf("Text() = %q, Cursor() = %d; want abc, 2", e.Text(), e.Cursor())
	}
}

func TestInsertNewline(t *testing.T) {
	e := New(WithContent("ab"))
	e.SetCursor(1)
	e.InsertNewline()

	if e.Text() != "a\nb" {
		t.Errorf("Text() = %q, want %q", e.Text(), "a\nb")
	}
	if col, row := e.CursorPosition(); col != 0 || row != 1 {
		t.Errorf("CursorPosition() = (%d, %d), want (0, 1)", col, row)
	}
}

func TestDeleteBackward(t *testing.T) {
	e := New(WithContent("abc"))
	if e.DeleteBackward() {
		t.Error("DeleteBackward at start should be a no-op")
	}

	e.SetCursor(2)
	if !e.DeleteBackward() {
		t.Fatal("DeleteBackward returned false")
	}
	if e.Text() != "ac" || e.Cursor() != 1 {
		t.Errorf("Text() = %q, Cursor() = %d; want ac, 1", e.Text(), e.Cursor())
	}
}

func TestDeleteForward(t *testing.T) {
	e := New(WithContent("abc"))
	e.SetCursor(1)
	if !e.DeleteForward() {
		t.Fatal("DeleteForward returned false")
	}
	if e.Text() != "ac" || e.Cursor() != 1 {
		t.Errorf("Text() = %q, Cursor() = %d; want ac, 1", e.Text(), e.Cursor())
	}

	e.SetCursor(e.Len())
	if e.DeleteForward() {
		t.Error("DeleteForward at end should be a no-op")
	}
}

func TestDeleteJoinsLines(t *testing.T) {
	e := New(WithContent("a\nb"))
	e.SetCursor(2)
	e.DeleteBackward()
	if e.Text() != "ab" || e.LineCount() != 1 {
		t.Errorf("Text() = %q, LineCount() = %d", e.Text(), e.LineCount())
	}
}

func TestSetCursorClamps(t *testing.T) {
	e := New(WithContent("abc"))
	e.SetCursor(-5)
	if e.Cursor() != 0 {
		t.Errorf("SetCursor(-5) -> %d, want 0", e.Cursor())
	}
	e.SetCursor(99)
	if e.Cursor() != 3 {
		t.Errorf("SetCursor(99) -> %d, want 3", e.Cursor())
	}
}

func TestRevisionChangesOnMutation(t *testing.T) {
	e := New(WithContent("ab"))
	rev := e.Revision()

	e.MoveRight()
	if e.Revision() != rev {
		t.Error("cursor motion changed the revision")
	}
	e.InsertChar('x')
	if e.Revision() == rev {
		t.Error("InsertChar did not change the revision")
	}
	rev = e.Revision()
	e.DeleteBackward()
	if e.Revision() == rev {
		t.Error("DeleteBackward did not change the revision")
	}
}

func TestCursorInvariantUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := New()
	model := []rune{}
	cur := 0

	for i := 0; i < 2000; i++ {
		switch rng.Intn(6) {
		case 0, 1:
			r := rune('a' + rng.Intn(26))
			if rng.Intn(5) == 0 {
				r = ' '
			}
			if e.InsertChar(r) != MarginBlocked {
				model = append(model[:cur], append([]rune{r}, model[cur:]...)...)
				cur++
			}
		case 2:
			e.InsertNewline()
			model = append(model[:cur], append([]rune{'\n'}, model[cur:]...)...)
			cur++
		case 3:
			if e.DeleteBackward() {
				model = append(model[:cur-1], model[cur:]...)
				cur--
			}
		case 4:
			if e.DeleteForward() {
				model = append(model[:cur], model[cur+1:]...)
			}
		case 5:
			e.SetCursor(rng.Intn(len(model) + 1))
			cur = e.Cursor()
		}

		if e.Cursor() < 0 || e.Cursor() > e.Len() {
			t.Fatalf("step %d: cursor %d outside [0, %d]", i, e.Cursor(), e.Len())
		}
		if e.Cursor() != cur {
			t.Fatalf("step %d: Cursor() = %d, want %d", i, e.Cursor(), cur)
		}
	}

	if e.Text() != string(model) {
		t.Errorf("Text() diverged from model")
	}
	if e.CharCount() != len(model) {
		t.Errorf("CharCount() = %d, want %d", e.CharCount(), len(model))
	}
}

// ============================================================================
// Margin
// ============================================================================

func TestMarginWarningAndBlock(t *testing.T) {
	e := New()
	for i := 0; i < 71; i++ {
		if got := e.InsertChar('x'); got != Inserted {
			t.Fatalf("char %d: InsertChar = %v, want inserted", i+1, got)
		}
	}

	if got := e.InsertChar('x'); got != MarginWarning {
		t.Errorf("72nd char: InsertChar = %v, want margin-warning", got)
	}
	if e.Len() != 72 {
		t.Errorf("Len() = %d after warning, want 72", e.Len())
	}

	rev := e.Revision()
	if got := e.InsertChar('x'); got != MarginBlocked {
		t.Errorf("73rd char: InsertChar = %v, want margin-blocked", got)
	}
	if e.Len() != 72 || e.Cursor() != 72 {
		t.Errorf("blocked insert mutated state: Len %d, Cursor %d", e.Len(), e.Cursor())
	}
	if e.Revision() != rev {
		t.Error("blocked insert changed the revision")
	}

	e.InsertNewline()
	if got := e.InsertChar('y'); got != Inserted {
		t.Errorf("after newline: InsertChar = %v, want inserted", got)
	}
}

func TestMarginCountsTerminator(t *testing.T) {
	cfg := config.DefaultTypewriterConfig()
	cfg.BellColumn = 4
	e := New(WithContent("ab\nnext"), WithTypewriter(cfg))
	e.SetCursor(2)

	// "ab\n" is 3 long; one more character reaches the bell column.
	if got := e.InsertChar('c'); got != MarginWarning {
		t.Errorf("InsertChar = %v, want margin-warning", got)
	}
	if got := e.InsertChar('d'); got != MarginBlocked {
		t.Errorf("InsertChar = %v, want margin-blocked", got)
	}
	if e.LineText(0) != "abc" {
		t.Errorf("LineText(0) = %q, want abc", e.LineText(0))
	}
}

func TestWithTypewriterValidates(t *testing.T) {
	e := New(WithTypewriter(config.TypewriterConfig{}))
	if e.Typewriter() != config.DefaultTypewriterConfig() {
		t.Errorf("Typewriter() = %+v, want defaults", e.Typewriter())
	}
}

// ============================================================================
// Counts
// ============================================================================

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello", 1},
		{"hello world test", 3},
		{"  leading and trailing  ", 3},
		{"one\ntwo\n\nthree", 3},
		{"tab\tseparated", 2},
		{" \n\t ", 0},
	}

	for _, tt := range tests {
		e := New(WithContent(tt.text))
		if got := e.WordCount(); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountsNeverStale(t *testing.T) {
	e := New(WithContent("hello"))
	e.SetCursor(5)

	if e.WordCount() != 1 || e.CharCount() != 5 {
		t.Fatalf("counts = %d/%d, want 1/5", e.WordCount(), e.CharCount())
	}

	e.InsertChar(' ')
	e.InsertChar('w')
	if e.WordCount() != 2 || e.CharCount() != 7 {
		t.Errorf("after insert counts = %d/%d, want 2/7", e.WordCount(), e.CharCount())
	}

	e.DeleteBackward()
	if e.WordCount() != 1 || e.CharCount() != 6 {
		t.Errorf("after delete counts = %d/%d, want 1/6", e.WordCount(), e.CharCount())
	}

	if _, err := e.ReadFrom(strings.NewReader("a b c d")); err != nil {
		t.Fatal(err)
	}
	if e.WordCount() != 4 {
		t.Errorf("after load WordCount = %d, want 4", e.WordCount())
	}
}

// ============================================================================
// Pages
// ============================================================================

func TestCurrentPage(t *testing.T) {
	e := New()
	for i := 0; i < 54; i++ {
		e.InsertNewline()
	}
	if got := e.CurrentPage(); got != 2 {
		t.Errorf("after 54 newlines CurrentPage() = %d, want 2", got)
	}
	for i := 0; i < 54; i++ {
		e.InsertNewline()
	}
	if got := e.CurrentPage(); got != 3 {
		t.Errorf("after 108 newlines CurrentPage() = %d, want 3", got)
	}
}

func TestCheckPageFeed(t *testing.T) {
	e := New()
	for i := 0; i < 53; i++ {
		e.InsertNewline()
		if e.CheckPageFeed() {
			t.Fatalf("CheckPageFeed true on page 1 at line %d", i+1)
		}
	}

	e.InsertNewline()
	if !e.CheckPageFeed() {
		t.Fatal("CheckPageFeed false when entering page 2")
	}
	for i := 0; i < 3; i++ {
		if e.CheckPageFeed() {
			t.Error("CheckPageFeed re-signaled on page 2")
		}
	}
	e.InsertNewline()
	if e.CheckPageFeed() {
		t.Error("CheckPageFeed signaled for a second line of page 2")
	}
}

func TestLastPageSurvivesCursorRelocation(t *testing.T) {
	e := New(WithContent(strings.Repeat("\n", 60)))
	e.SetCursor(e.Len())
	if !e.CheckPageFeed() {
		t.Fatal("expected a feed when jumping to page 2")
	}

	e.SetCursor(0)
	if e.CurrentPage() != 1 {
		t.Errorf("CurrentPage() = %d, want 1", e.CurrentPage())
	}
	if e.LastPage() != 2 {
		t.Errorf("LastPage() = %d, want 2", e.LastPage())
	}
	e.SetCursor(e.Len())
	if e.CheckPageFeed() {
		t.Error("returning to a visited page must not feed again")
	}
}

func TestMoveDownReportsPageCrossing(t *testing.T) {
	cfg := config.DefaultTypewriterConfig()
	cfg.LinesPerPage = 2
	e := New(WithContent("a\nb\nc\nd"), WithTypewriter(cfg))

	if e.MoveDown() {
		t.Error("row 0 -> 1 stays on page 1")
	}
	if !e.MoveDown() {
		t.Error("row 1 -> 2 enters page 2")
	}
	if e.LastPage() != 2 {
		t.Errorf("LastPage() = %d, want 2", e.LastPage())
	}
	if e.CheckPageFeed() {
		t.Error("CheckPageFeed after MoveDown already raised the page")
	}
	e.MoveUp()
	if !e.MoveDown() {
		t.Error("re-entering page 2 from page 1 must report a crossing")
	}
	if e.LastPage() != 2 {
		t.Errorf("LastPage() = %d, want 2", e.LastPage())
	}
	if e.MoveDown() {
		t.Error("row 2 -> 3 stays on page 2")
	}
	if e.CheckPageFeed() {
		t.Error("CheckPageFeed on an already reached page")
	}
}

// ============================================================================
// Navigation
// ============================================================================

func TestMotionSkipsCRLF(t *testing.T) {
	e := New(WithContent("ab\r\ncdef\r\nxy"))

	e.MoveLineEnd()
	if col, row := e.CursorPosition(); col != 2 || row != 0 {
		t.Errorf("MoveLineEnd on CRLF line = (%d, %d), want (2, 0)", col, row)
	}

	e.MoveDown()
	e.MoveLineEnd()
	e.MoveUp()
	if col, _ := e.CursorPosition(); col != 2 {
		t.Errorf("MoveUp clamp = %d, want 2 (before \\r)", col)
	}

	e.InsertChar('!')
	if got, want := e.Text(), "ab!\r\ncdef\r\nxy"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestMoveLeftRight(t *testing.T) {
	e := New(WithContent("ab"))
	e.MoveLeft()
	if e.Cursor() != 0 {
		t.Errorf("MoveLeft at start -> %d", e.Cursor())
	}
	e.MoveRight()
	e.MoveRight()
	e.MoveRight()
	if e.Cursor() != 2 {
		t.Errorf("MoveRight past end -> %d, want 2", e.Cursor())
	}
}

func TestMoveUpClampsColumn(t *testing.T) {
	e := New(WithContent("a\nb"))
	e.SetCursor(3) // row 1, col 1
	e.MoveUp()
	col, row := e.CursorPosition()
	if row != 0 || col > 1 {
		t.Errorf("MoveUp -> (%d, %d), want row 0 col <= 1", col, row)
	}
	if e.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1 (before the terminator)", e.Cursor())
	}

	e.MoveUp()
	if e.Cursor() != 1 {
		t.Errorf("MoveUp on row 0 moved the cursor to %d", e.Cursor())
	}
}

func TestMoveUpDownKeepsColumn(t *testing.T) {
	e := New(WithContent("hello\nhi\nworld"))
	e.SetCursor(4) // row 0, col 4

	e.MoveDown()
	if col, row := e.CursorPosition(); col != 2 || row != 1 {
		t.Errorf("MoveDown -> (%d, %d), want (2, 1)", col, row)
	}
	e.MoveDown()
	if col, row := e.CursorPosition(); col != 2 || row != 2 {
		t.Errorf("MoveDown -> (%d, %d), want (2, 2)", col, row)
	}
	if e.MoveDown() {
		t.Error("MoveDown on last row reported a crossing")
	}
	if col, row := e.CursorPosition(); col != 2 || row != 2 {
		t.Errorf("MoveDown on last row -> (%d, %d), want (2, 2)", col, row)
	}
}

func TestMoveLineStartEnd(t *testing.T) {
	e := New(WithContent("one\ntwo three\nfour"))
	e.SetCursor(6)

	e.MoveLineEnd()
	if e.Cursor() != 13 {
		t.Errorf("MoveLineEnd -> %d, want 13", e.Cursor())
	}
	if r := []rune(e.Text())[e.Cursor()]; r != '\n' {
		t.Errorf("MoveLineEnd should stop before the terminator, at %q", r)
	}
	e.MoveLineStart()
	if e.Cursor() != 4 {
		t.Errorf("MoveLineStart -> %d, want 4", e.Cursor())
	}

	e.SetCursor(15)
	e.MoveLineEnd()
	if e.Cursor() != 18 {
		t.Errorf("MoveLineEnd on last line -> %d, want 18", e.Cursor())
	}
}

func TestCursorOnTerminatorBelongsToLine(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursor(2)
	if col, row := e.CursorPosition(); col != 2 || row != 0 {
		t.Errorf("CursorPosition() = (%d, %d), want (2, 0)", col, row)
	}
	e.SetCursor(3)
	if col, row := e.CursorPosition(); col != 0 || row != 1 {
		t.Errorf("CursorPosition() = (%d, %d), want (0, 1)", col, row)
	}
}

func TestWordMotion(t *testing.T) {
	e := New(WithContent("hello world test"))

	var rights []int
	for i := 0; i < 3; i++ {
		e.MoveWordRight()
		rights = append(rights, e.Cursor())
	}
	if want := []int{6, 12, 16}; !equalInts(rights, want) {
		t.Errorf("MoveWordRight landings = %v, want %v", rights, want)
	}

	var lefts []int
	for i := 0; i < 4; i++ {
		e.MoveWordLeft()
		lefts = append(lefts, e.Cursor())
	}
	if want := []int{12, 6, 0, 0}; !equalInts(lefts, want) {
		t.Errorf("MoveWordLeft landings = %v, want %v", lefts, want)
	}
}

func TestWordMotionAcrossLines(t *testing.T) {
	e := New(WithContent("alpha  \n  beta"))
	e.SetCursor(2)
	e.MoveWordRight()
	if e.Cursor() != 10 {
		t.Errorf("MoveWordRight -> %d, want 10", e.Cursor())
	}
	e.MoveWordLeft()
	if e.Cursor() != 0 {
		t.Errorf("MoveWordLeft -> %d, want 0", e.Cursor())
	}
}

// ============================================================================
// Persistence
// ============================================================================

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"plain",
		"line one\nline two\n",
		"crlf\r\nlines\r\n",
		"unicode: héllo wörld ✓ 日本語\n\n\ttabbed",
		strings.Repeat("long line of text ", 500),
	}

	for _, text := range texts {
		e := New()
		if _, err := e.ReadFrom(strings.NewReader(text)); err != nil {
			t.Fatalf("ReadFrom(%q) error: %v", text, err)
		}

		var buf bytes.Buffer
		n, err := e.WriteTo(&buf)
		if err != nil {
			t.Fatalf("WriteTo error: %v", err)
		}
		if buf.String() != text {
			t.Errorf("round trip changed text: got %q, want %q", buf.String(), text)
		}
		if n != int64(len(text)) {
			t.Errorf("WriteTo wrote %d bytes, want %d", n, len(text))
		}
		if e.Len() != utf8.RuneCountInString(text) {
			t.Errorf("Len() = %d, want %d", e.Len(), utf8.RuneCountInString(text))
		}
	}
}

func TestReadFromResetsState(t *testing.T) {
	e := New(WithContent(strings.Repeat("\n", 60)))
	e.SetCursor(e.Len())
	e.CheckPageFeed()
	e.InsertChar('x')

	if _, err := e.ReadFrom(strings.NewReader("fresh")); err != nil {
		t.Fatal(err)
	}
	if e.Cursor() != 0 || e.LastPage() != 1 || e.Modified() {
		t.Errorf("after ReadFrom cursor=%d lastPage=%d modified=%v", e.Cursor(), e.LastPage(), e.Modified())
	}
}

func TestReadFromRejectsInvalidUTF8(t *testing.T) {
	e := New(WithContent("keep"))
	_, err := e.ReadFrom(bytes.NewReader([]byte{'a', 0xff, 'b'}))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("ReadFrom error = %v, want ErrInvalidUTF8", err)
	}
	if e.Text() != "keep" {
		t.Errorf("failed ReadFrom changed the document to %q", e.Text())
	}
}

func TestMarkSaved(t *testing.T) {
	e := New()
	e.InsertChar('a')
	e.MarkSaved()
	if e.Modified() {
		t.Error("Modified() = true after MarkSaved")
	}
}

func TestInsertResultString(t *testing.T) {
	if MarginBlocked.String() != "margin-blocked" {
		t.Errorf("String() = %q", MarginBlocked.String())
	}
	if InsertResult(9).String() != "InsertResult(9)" {
		t.Errorf("String() = %q", InsertResult(9).String())
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
