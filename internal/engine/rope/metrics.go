package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes cache the
// totals of their subtrees.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the Unicode scalar value count.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// Chunks is the number of storage chunks the text occupies.
	Chunks int
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,

		Chunks: s.Chunks + other.Chunks,
	}
}

// IsZero returns true if this summary describes empty text.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s)}
	if len(s) > 0 {
		sum.Chunks = 1
	}
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c == '\n' {
				sum.Lines++
			}
			i++
		} else {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		sum.Chars++
	}
	return sum
}

// charToByte converts a character offset within s to a byte offset.
// Offsets past the end clamp to len(s).
func charToByte(s string, chars int) int {
	if chars <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == chars {
			return i
		}
		n++
	}
	return len(s)
}

// newlinesBefore counts newlines among the first chars characters of s.
func newlinesBefore(s string, chars int) int {
	count := 0
	n := 0
	for _, r := range s {
		if n >= chars {
			break
		}
		if r == '\n' {
			count++
		}
		n++
	}
	return count
}

// nthNewlineChar returns the character index of the nth newline (1-based)
// in s, or -1 if s has fewer newlines.
func nthNewlineChar(s string, nth int) int {
	if nth <= 0 {
		return -1
	}
	seen := 0
	n := 0
	for _, r := range s {
		if r == '\n' {
			seen++
			if seen == nth {
				return n
			}
		}
		n++
	}
	return -1
}
