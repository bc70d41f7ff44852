package rope

import (
	"io"
	"math/bits"
	"strings"
)

// Rope is an immutable rope data structure for text storage.
// Operations return new Rope values; the original is never modified.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var builder Builder
	if _, err := builder.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return builder.Build(), nil
}

// buildFromChunks builds a balanced rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}
	return Rope{root: buildNodeFromChildren(leaves)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// LenChars returns the number of characters.
func (r Rope) LenChars() int {
	return r.Summary().Chars
}

// LenBytes returns the UTF-8 byte length.
func (r Rope) LenBytes() int {
	return r.Summary().Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.LenBytes() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.LenBytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// WriteTo writes the rope's chunks to w in order, without transformation.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	if r.root == nil {
		return 0, nil
	}
	return r.root.writeTo(w)
}

// Insert inserts text at the given character offset.
// Offsets past the end append.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}

	offset = max(offset, 0)
	if offset >= r.LenChars() {
		return r.Concat(FromString(text))
	}
	if offset == 0 {
		return FromString(text).Concat(r)
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right).rebalance()
}

// Delete removes the characters in [start, end).
// The range is clamped to the rope.
func (r Rope) Delete(start, end int) Rope {
	length := r.LenChars()
	start = max(start, 0)
	end = min(end, length)
	if start >= end {
		return r
	}

	if start == 0 && end == length {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end == length {
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right).rebalance()
}

// rebalance rebuilds the tree from coalesced chunks once repeated edits have
// left it fragmented (many undersized chunks) or taller than its chunk count
// warrants.
func (r Rope) rebalance() Rope {
	sum := r.Summary()
	if sum.Chunks <= MaxChunksPerLeaf*MaxChildren {
		return r
	}
	fragmented := sum.Bytes/sum.Chunks < MinChunkSize/4
	tooTall := r.Height() > 2*bits.Len(uint(sum.Chunks))+2
	if !fragmented && !tooTall {
		return r
	}

	var coalesced []Chunk
	it := r.Chunks()
	for it.Next() {
		chunk := it.Chunk()
		if n := len(coalesced); n > 0 && coalesced[n-1].Len()+chunk.Len() <= MaxChunkSize {
			coalesced[n-1] = NewChunk(coalesced[n-1].String() + chunk.String())
			continue
		}
		coalesced = append(coalesced, chunk)
	}
	return buildFromChunks(coalesced)
}

// Split splits the rope at a character offset.
// Left contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.LenChars() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// CharAt returns the character at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) CharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= r.LenChars() {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		for _, child := range node.children {
			if offset < child.Chars() {
				node = child
				break
			}
			offset -= child.Chars()
		}
	}

	for _, chunk := range node.chunks {
		if offset < chunk.Chars() {
			return chunk.CharAt(offset)
		}
		offset -= chunk.Chars()
	}
	return 0, false
}

// CharToLine returns the line containing the character offset.
// A newline belongs to the line it terminates. Offsets past the end map to
// the last line.
func (r Rope) CharToLine(offset int) int {
	if offset <= 0 || r.IsEmpty() {
		return 0
	}
	if offset >= r.LenChars() {
		return r.LineCount() - 1
	}

	line := 0
	node := r.root
	for !node.IsLeaf() {
		for _, child := range node.children {
			if offset < child.Chars() {
				node = child
				break
			}
			offset -= child.Chars()
			line += child.summary.Lines
		}
	}

	for _, chunk := range node.chunks {
		if offset < chunk.Chars() {
			return line + newlinesBefore(chunk.String(), offset)
		}
		offset -= chunk.Chars()
		line += chunk.Summary().Lines
	}
	return line
}

// LineToChar returns the character offset at which the given line starts.
// Lines past the end map to LenChars.
func (r Rope) LineToChar(line int) int {
	if line <= 0 || r.IsEmpty() {
		return 0
	}
	if line >= r.LineCount() {
		return r.LenChars()
	}

	// Line n starts right after the nth newline.
	want := line
	offset := 0
	node := r.root
	for !node.IsLeaf() {
		for _, child := range node.children {
			if want <= child.summary.Lines {
				node = child
				break
			}
			want -= child.summary.Lines
			offset += child.Chars()
		}
	}

	for _, chunk := range node.chunks {
		if want <= chunk.Summary().Lines {
			return offset + nthNewlineChar(chunk.String(), want) + 1
		}
		want -= chunk.Summary().Lines
		offset += chunk.Chars()
	}
	return r.LenChars()
}

// LineLen returns the character length of a line including its trailing
// newline, if any.
func (r Rope) LineLen(line int) int {
	if line < 0 || line >= r.LineCount() {
		return 0
	}
	return r.LineToChar(line+1) - r.LineToChar(line)
}

// LineText returns the text of a line without its trailing newline.
func (r Rope) LineText(line int) string {
	if line < 0 || line >= r.LineCount() {
		return ""
	}
	text := r.Slice(r.LineToChar(line), r.LineToChar(line+1))
	return strings.TrimSuffix(text, "\n")
}

// Slice returns the text in the character range [start, end).
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.LenChars())
	if start >= end {
		return ""
	}
	_, rest := r.Split(start)
	mid, _ := rest.Split(end - start)
	return mid.String()
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.LenBytes() != other.LenBytes() {
		return false
	}
	return r.String() == other.String()
}
