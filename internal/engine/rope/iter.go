package rope

// ChunkIterator iterates over the chunks of a rope in document order.
type ChunkIterator struct {
	stack   []iterFrame
	started bool
	root    *Node
	chunk   Chunk
}

type iterFrame struct {
	node *Node
	next int
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{root: r.root, stack: make([]iterFrame, 0, 8)}
}

// Next advances to the next chunk.
// Returns false when iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.root == nil {
			return false
		}
		it.stack = append(it.stack, iterFrame{node: it.root})
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			if top.next < len(top.node.chunks) {
				it.chunk = top.node.chunks[top.next]
				top.next++
				return true
			}
		} else if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			it.stack = append(it.stack, iterFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Runes calls fn for each character in document order until fn returns
// false.
func (r Rope) Runes(fn func(rune) bool) {
	it := r.Chunks()
	for it.Next() {
		for _, c := range it.Chunk().String() {
			if !fn(c) {
				return
			}
		}
	}
}
