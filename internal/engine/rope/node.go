package rope

import (
	"io"
	"strings"
)

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
type Node struct {
	height  uint8
	summary TextSummary

	// Internal node fields (height > 0)
	children []*Node

	// Leaf node fields (height == 0)
	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	n.recomputeSummary()
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	var height uint8
	for _, child := range children {
		height = max(height, child.height)
	}
	n := &Node{height: height + 1, children: children}
	n.recomputeSummary()
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Chars returns the character count of this subtree.
func (n *Node) Chars() int {
	return n.summary.Chars
}

func (n *Node) recomputeSummary() {
	n.summary = TextSummary{}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}
	for _, child := range n.children {
		n.summary = n.summary.Add(child.summary)
	}
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

func (n *Node) writeTo(w io.Writer) (int64, error) {
	var total int64
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			written, err := io.WriteString(w, chunk.String())
			total += int64(written)
			if err != nil {
				return total, err
			}
		}
		return total, nil
	}
	for _, child := range n.children {
		written, err := child.writeTo(w)
		total += written
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// split splits the node at a character offset.
// Left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n
	}
	if offset >= n.Chars() {
		return n, newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	pos := 0

	for _, chunk := range n.chunks {
		chars := chunk.Chars()
		switch {
		case pos+chars <= offset:
			leftChunks = append(leftChunks, chunk)
		case pos >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.SplitChars(offset - pos)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		pos += chars
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	pos := 0

	for _, child := range n.children {
		chars := child.Chars()
		switch {
		case pos+chars <= offset:
			leftChildren = append(leftChildren, child)
		case pos >= offset:
			rightChildren = append(rightChildren, child)
		default:
			left, right := child.split(offset - pos)
			if left.summary.Bytes > 0 {
				leftChildren = append(leftChildren, left)
			}
			if right.summary.Bytes > 0 {
				rightChildren = append(rightChildren, right)
			}
		}
		pos += chars
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from a list of child nodes.
func buildNodeFromChildren(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		group := make([]*Node, end-i)
		copy(group, children[i:end])
		parents = append(parents, newInternalNode(group))
	}
	return buildNodeFromChildren(parents)
}

// concat concatenates two nodes. When the heights differ it descends the
// spine of the taller tree so the seam leaves meet and can coalesce.
func concat(left, right *Node) *Node {
	if left == nil || left.summary.Bytes == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.summary.Bytes == 0 {
		return left
	}

	switch {
	case left.height == right.height:
		return mergeNodes(left, right)
	case left.height > right.height:
		last := len(left.children) - 1
		merged := concat(left.children[last], right)
		children := make([]*Node, 0, len(left.children)+MaxChildren)
		children = append(children, left.children[:last]...)
		if merged.height >= left.height {
			children = append(children, merged.children...)
		} else {
			children = append(children, merged)
		}
		return buildNodeFromChildren(children)
	default:
		merged := concat(left, right.children[0])
		children := make([]*Node, 0, len(right.children)+MaxChildren)
		if merged.height >= right.height {
			children = append(children, merged.children...)
		} else {
			children = append(children, merged)
		}
		children = append(children, right.children[1:]...)
		return buildNodeFromChildren(children)
	}
}

// concatLeaves concatenates two leaf nodes, coalescing the chunks that meet
// at the seam so single-character edits do not fragment the leaves.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks[:len(left.chunks)-1]...)
	chunks = append(chunks, left.chunks[len(left.chunks)-1].Append(right.chunks[0])...)
	chunks = append(chunks, right.chunks[1:]...)

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNodeWithChunks(chunks)
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		group := make([]Chunk, end-i)
		copy(group, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(group))
	}
	return buildNodeFromChildren(leaves)
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}
