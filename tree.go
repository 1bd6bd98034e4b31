package huffpack

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NoChild is the child index stored in both Left and Right of a Leaf.
const NoChild = -1

// Node is one node of a Tree.  A Leaf has Left == Right == NoChild and a
// meaningful Symbol; an Internal node has two valid children and a Freq equal
// to the sum of theirs.
type Node struct {
	Freq   uint64
	Symbol Symbol
	Left   int32
	Right  int32
}

// IsLeaf returns true iff this node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoChild
}

// Tree is a full binary Huffman tree stored as an arena of Nodes addressed by
// index.  Leaves occupy the first NumLeaves() slots in ascending symbol order;
// internal nodes follow in the order they were created.
type Tree struct {
	nodes     []Node
	numLeaves int
	root      int32
}

// BuildTree builds the Huffman tree for the non-zero entries of freq.
//
// The two lowest-frequency nodes are merged repeatedly, the first one removed
// becoming the left child.  Ties are broken by a total order so that the same
// table always yields the same tree: lower frequency first, then leaves before
// internal nodes, then ascending symbol among leaves, then creation order
// among internal nodes.
//
// An empty table yields a *DataError wrapping ErrEmptyTable.
func BuildTree(freq FrequencyTable) (*Tree, error) {
	numLeaves := freq.Len()
	if numLeaves == 0 {
		return nil, &DataError{Op: "build tree", Err: ErrEmptyTable}
	}

	t := &Tree{
		nodes:     make([]Node, 0, 2*numLeaves-1),
		numLeaves: numLeaves,
	}

	for symbol := 0; symbol < NumSymbols; symbol++ {
		if count := freq[symbol]; count != 0 {
			t.nodes = append(t.nodes, Node{
				Freq:   count,
				Symbol: Symbol(symbol),
				Left:   NoChild,
				Right:  NoChild,
			})
		}
	}

	h := nodeHeap{tree: t, list: make([]int32, 0, numLeaves)}
	for index := range t.nodes {
		h.list = append(h.list, int32(index))
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		next := int32(len(t.nodes))
		t.nodes = append(t.nodes, Node{
			Freq:  t.nodes[a].Freq + t.nodes[b].Freq,
			Left:  a,
			Right: b,
		})
		heap.Push(&h, next)
	}

	t.root = heap.Pop(&h).(int32)
	assert.Assertf(len(t.nodes) == 2*numLeaves-1, "tree has %d nodes for %d leaves", len(t.nodes), numLeaves)
	assert.Assertf(int(t.root) == len(t.nodes)-1, "root %d is not the last node %d", t.root, len(t.nodes)-1)
	return t, nil
}

// Root returns the index of the root node.
func (t *Tree) Root() int32 {
	return t.root
}

// Node returns the node at the given index.
func (t *Tree) Node(index int32) Node {
	return t.nodes[index]
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the alphabet size.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// NumInternal returns the number of internal nodes.
func (t *Tree) NumInternal() int {
	return len(t.nodes) - t.numLeaves
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one node per line in pre-order with left children first.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")

	type stackItem struct {
		index int32
		depth int
	}

	stack := []stackItem{{t.root, 1}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.index]
		indent := bytes.Repeat([]byte{'\t'}, top.depth)
		if node.IsLeaf() {
			fmt.Fprintf(&buf, "%sLeaf(%d) = %d\n", indent, node.Symbol, node.Freq)
			continue
		}
		fmt.Fprintf(&buf, "%sInternal = %d\n", indent, node.Freq)
		stack = append(stack, stackItem{node.Right, top.depth + 1})
		stack = append(stack, stackItem{node.Left, top.depth + 1})
	}

	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	ai, bi := h.list[i], h.list[j]
	a, b := h.tree.nodes[ai], h.tree.nodes[bi]
	if a.Freq != b.Freq {
		return a.Freq < b.Freq
	}
	aLeaf, bLeaf := a.IsLeaf(), b.IsLeaf()
	if aLeaf != bLeaf {
		return aLeaf
	}
	if aLeaf {
		return a.Symbol < b.Symbol
	}
	return ai < bi
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
