package huffpack

import (
	"io"

	"github.com/chronos-tachyon/assert"
)

const bitWriterBufferSize = 4096

// A bitWriter packs a stream of bits into bytes, most significant bit first.
// Whole bytes are buffered and flushed to its contained io.Writer.  Write
// errors are sticky and reported by Close or Err.
type bitWriter struct {
	w   io.Writer
	err error
	buf []byte

	// acc holds the nbits (always < 8 between calls) bits that have not
	// yet formed a whole byte, earliest bit most significant.
	acc   uint64
	nbits uint

	written int64
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w, buf: make([]byte, 0, bitWriterBufferSize)}
}

// writeBits appends the low n bits of v, the most significant of them first.
func (bw *bitWriter) writeBits(v uint64, n uint) {
	assert.Assertf(n <= 32, "writeBits: n %d > 32", n)
	bw.acc = bw.acc<<n | v
	bw.nbits += n
	for bw.nbits >= 8 {
		bw.nbits -= 8
		bw.buf = append(bw.buf, byte(bw.acc>>bw.nbits))
	}
	bw.acc &= (uint64(1) << bw.nbits) - 1
	if len(bw.buf) >= bitWriterBufferSize {
		bw.flush()
	}
}

// writeCode appends every bit of hc, first bit first.
func (bw *bitWriter) writeCode(hc Code) {
	remaining := uint(hc.Size)
	for word := 0; remaining != 0; word++ {
		n := remaining
		if n > 64 {
			n = 64
		}
		remaining -= n

		v := reverseBits(n, hc.Bits[word])
		for n > 32 {
			n -= 32
			bw.writeBits(v>>n, 32)
			v &= (uint64(1) << n) - 1
		}
		bw.writeBits(v, n)
	}
}

// Close pads the final partial byte with zero bits, flushes everything and
// returns the number of padding bits (0..7).
func (bw *bitWriter) Close() (padding byte, err error) {
	if bw.nbits != 0 {
		padding = byte(8 - bw.nbits)
		bw.buf = append(bw.buf, byte(bw.acc<<padding))
		bw.acc, bw.nbits = 0, 0
	}
	bw.flush()
	return padding, bw.err
}

// Written returns the number of whole bytes handed to the io.Writer so far.
func (bw *bitWriter) Written() int64 {
	return bw.written
}

func (bw *bitWriter) Err() error {
	return bw.err
}

func (bw *bitWriter) flush() {
	if bw.err == nil && len(bw.buf) != 0 {
		var n int
		n, bw.err = bw.w.Write(bw.buf)
		bw.written += int64(n)
	}
	bw.buf = bw.buf[:0]
}
