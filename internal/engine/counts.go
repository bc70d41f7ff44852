package engine

import "unicode"

// countCache memoizes the document counts for one revision.
type countCache struct {
	valid    bool
	revision uint64
	chars    int
	words    int
}

// CharCount returns the number of characters in the document.
func (e *Engine) CharCount() int {
	return e.loadCounts().chars
}

// WordCount returns the number of maximal runs of non-whitespace
// characters. Line boundaries are whitespace like any other.
func (e *Engine) WordCount() int {
	return e.loadCounts().words
}

func (e *Engine) loadCounts() *countCache {
	c := &e.counts
	if c.valid && c.revision == e.revision {
		return c
	}

	words := 0
	inWord := false
	e.doc.Runes(func(r rune) bool {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			words++
		}
		return true
	})

	*c = countCache{
		valid:    true,
		revision: e.revision,
		chars:    e.doc.LenChars(),
		words:    words,
	}
	return c
}
