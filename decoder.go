package huffpack

import (
	"fmt"
)

// Decode walks t bit by bit over packed.Data, emitting a Symbol at every
// Leaf, and stops once only the packed.Padding filler bits remain.
//
// A single-leaf tree consumes one bit per symbol, matching the "0" code that
// GenerateCodes assigns in that case.
//
// A bitstream that ends in the middle of a code yields a *DataError wrapping
// ErrBadContainer.
func Decode(t *Tree, packed PackedOutput) ([]byte, error) {
	if t == nil || len(t.nodes) == 0 {
		return nil, &DataError{Op: "decode", Err: ErrNilTree}
	}
	if packed.Padding > 7 || (len(packed.Data) == 0 && packed.Padding != 0) {
		return nil, &DataError{
			Op:  "decode",
			Err: fmt.Errorf("%w: invalid padding %d", ErrBadContainer, packed.Padding),
		}
	}

	total := packed.Bits()
	root := t.nodes[t.root]
	out := make([]byte, 0, minInt(len(packed.Data)*8, 1<<20))

	if root.IsLeaf() {
		for i := uint64(0); i < total; i++ {
			out = append(out, byte(root.Symbol))
		}
		return out, nil
	}

	index := t.root
	for i := uint64(0); i < total; i++ {
		bit := (packed.Data[i/8] >> (7 - i%8)) & 1
		node := t.nodes[index]
		if bit == 0 {
			index = node.Left
		} else {
			index = node.Right
		}
		if next := t.nodes[index]; next.IsLeaf() {
			out = append(out, byte(next.Symbol))
			index = t.root
		}
	}

	if index != t.root {
		return nil, &DataError{
			Op:  "decode",
			Err: fmt.Errorf("%w: bitstream ends inside a code", ErrBadContainer),
		}
	}
	return out, nil
}
