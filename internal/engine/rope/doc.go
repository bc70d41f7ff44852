// Package rope provides an immutable rope data structure indexed by
// character (rune) offsets and line numbers.
//
// A rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes store aggregated metrics (bytes, characters, newlines).
// Every positional query descends the tree using those metrics, so
// insertion, deletion and the offset/line conversions are O(log n) in the
// number of chunks.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")       // "hello, world"
//	r = r.Delete(0, 7)         // "world"
//	row := r.CharToLine(3)     // 0
//
// Offsets are always character offsets, never byte offsets. A line's
// terminator ('\n') belongs to the line it ends, so the document always has
// LineCount() >= 1 and the last line never carries a terminator.
package rope
