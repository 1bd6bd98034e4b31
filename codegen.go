package huffpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol to its Huffman code.  Symbols absent from the
// table have a Code of Size 0.
type CodeTable struct {
	codes   [NumSymbols]Code
	count   int
	minSize byte
	maxSize byte
}

// GenerateCodes walks the tree depth-first, appending a 0 bit on each descent
// to the left and a 1 bit on each descent to the right, and records the
// accumulated path at every Leaf.
//
// If the tree is a single Leaf, its symbol is assigned the one-bit code "0";
// an empty code could not be encoded.
//
// A nil or empty tree yields a *DataError wrapping ErrNilTree.
func GenerateCodes(t *Tree) (CodeTable, error) {
	if t == nil || len(t.nodes) == 0 {
		return CodeTable{}, &DataError{Op: "generate codes", Err: ErrNilTree}
	}

	type stackItem struct {
		index int32
		code  Code
	}

	// The stack never holds more than depth+1 entries, and the depth of
	// a tree with at most 256 leaves is at most 255.
	stack := make([]stackItem, 0, t.numLeaves)
	stack = append(stack, stackItem{index: t.root})

	var table CodeTable
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.index]
		if node.IsLeaf() {
			table.set(node.Symbol, top.code)
			continue
		}
		stack = append(stack, stackItem{node.Right, top.code.Append(1)})
		stack = append(stack, stackItem{node.Left, top.code.Append(0)})
	}

	if table.count == 0 {
		return CodeTable{}, &DataError{Op: "generate codes", Err: ErrNoCodes}
	}

	if table.count == 1 {
		root := t.nodes[t.root]
		assert.Assertf(root.IsLeaf(), "one code but root %d is not a leaf", t.root)
		table.codes[root.Symbol] = Code{Size: 1}
		table.minSize, table.maxSize = 1, 1
	}

	assert.Assertf(table.count == t.numLeaves, "generated %d codes for %d leaves", table.count, t.numLeaves)
	return table, nil
}

func (table *CodeTable) set(symbol Symbol, hc Code) {
	table.codes[symbol] = hc
	if table.count == 0 {
		table.minSize = hc.Size
		table.maxSize = hc.Size
	} else if table.minSize > hc.Size {
		table.minSize = hc.Size
	} else if table.maxSize < hc.Size {
		table.maxSize = hc.Size
	}
	table.count++
}

// Lookup returns the code for the given Symbol, and false if the Symbol has
// no code.
func (table *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	hc := table.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of Symbols that have a code.
func (table *CodeTable) Len() int {
	return table.count
}

// MinSize is the bit length of the shortest code.
func (table *CodeTable) MinSize() byte {
	return table.minSize
}

// MaxSize is the bit length of the longest code.
func (table *CodeTable) MaxSize() byte {
	return table.maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol.
func (table *CodeTable) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := range table.codes {
		out[symbol] = table.codes[symbol].Size
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.  Symbols without a code are omitted.
func (table *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", table.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", table.maxSize)
	for symbol := range table.codes {
		hc := table.codes[symbol]
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
