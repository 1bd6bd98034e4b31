package huffpack

import (
	mathbits "math/bits"
)

// reverseBits reverses the low size bits of bits.  size must be in 1..64.
func reverseBits(size uint, bits uint64) uint64 {
	return mathbits.Reverse64(bits) >> (64 - size)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
