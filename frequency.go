package huffpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// DefaultChunkSize is the number of bytes read per call while scanning the
// input.
const DefaultChunkSize = 1 << 20

// FrequencyTable holds the number of occurrences of each byte value.
type FrequencyTable [NumSymbols]uint64

// CountFrequencies scans r to EOF and returns the occurrence count of every
// byte value.  It reads in chunks of DefaultChunkSize bytes.
func CountFrequencies(r io.Reader) (FrequencyTable, error) {
	return CountFrequenciesSize(r, DefaultChunkSize)
}

// CountFrequenciesSize is CountFrequencies with an explicit chunk size.
//
// A read failure yields a *FileError.  An input of zero bytes yields a
// *DataError wrapping ErrEmptyInput.
func CountFrequenciesSize(r io.Reader, chunkSize int) (FrequencyTable, error) {
	assert.Assertf(chunkSize > 0, "chunkSize %d <= 0", chunkSize)

	var freq FrequencyTable
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		for _, ch := range buf[:n] {
			freq[ch]++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return FrequencyTable{}, &FileError{Op: "read", Err: err}
		}
	}

	if freq.Len() == 0 {
		return FrequencyTable{}, &DataError{Op: "count frequencies", Err: ErrEmptyInput}
	}
	return freq, nil
}

// Len returns the number of distinct symbols with a non-zero count.
func (freq *FrequencyTable) Len() int {
	var n int
	for _, count := range freq {
		if count != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts, i.e. the length of the input.
func (freq *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, count := range freq {
		sum += count
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.  Symbols with a zero count are omitted.
func (freq *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for symbol, count := range freq {
		if count == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\t%d: %d\n", symbol, count)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
