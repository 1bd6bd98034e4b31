package huffpack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest code a 256-symbol alphabet can produce.
const MaxCodeSize = NumSymbols - 1

const codeWords = 4

// Code represents a sequence of up to MaxCodeSize bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits[0] is the first bit; bit i lives in Bits[i/64] at position
	// i%64.
	Bits [codeWords]uint64
}

// MakeCodeFromString constructs a Code from a string of '0' and '1'
// characters, first bit first.
func MakeCodeFromString(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", str, MaxCodeSize)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", ch, str)
		}
	}
	return hc, nil
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code size %d would exceed %d", hc.Size, MaxCodeSize)
	assert.Assertf(bit <= 1, "bit %d is not 0 or 1", bit)
	i := uint(hc.Size)
	hc.Bits[i/64] |= uint64(bit) << (i % 64)
	hc.Size++
	return hc
}

// Bit returns the i'th bit of this Code.
func (hc Code) Bit(i uint) uint {
	assert.Assertf(i < uint(hc.Size), "bit index %d out of range for size %d", i, hc.Size)
	return uint(hc.Bits[i/64]>>(i%64)) & 1
}

// HasPrefix returns true iff prefix is a (not necessarily proper) prefix of
// this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	remaining := uint(prefix.Size)
	for word := 0; remaining != 0; word++ {
		n := remaining
		if n > 64 {
			n = 64
		}
		mask := ^uint64(0) >> (64 - n)
		if (hc.Bits[word]^prefix.Bits[word])&mask != 0 {
			return false
		}
		remaining -= n
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var sb strings.Builder
	for i := uint(0); i < uint(hc.Size); i++ {
		sb.WriteByte('0' + byte(hc.Bit(i)))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
