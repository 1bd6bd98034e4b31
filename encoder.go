package huffpack

import (
	"bytes"
	"fmt"
	"io"
)

// PackedOutput is the result of encoding: the packed bytes, plus the number
// of low-order filler bits in the final byte.
type PackedOutput struct {
	Data []byte

	// Padding is the number of unused zero bits at the end of the last
	// byte of Data, 0..7.  It is always 0 if Data is empty.
	Padding byte
}

// Bits returns the number of meaningful bits in Data.
func (p PackedOutput) Bits() uint64 {
	if len(p.Data) == 0 {
		return 0
	}
	return 8*uint64(len(p.Data)) - uint64(p.Padding)
}

// Encode re-reads r and packs the code of every byte into a continuous
// bitstream, most significant bit first within each byte.
//
// A byte without a code yields a *DataError wrapping ErrMissingCode.  A read
// failure yields a *FileError.
func Encode(r io.Reader, table CodeTable) (PackedOutput, error) {
	var buf bytes.Buffer
	_, padding, err := EncodeTo(&buf, r, table)
	if err != nil {
		return PackedOutput{}, err
	}
	return PackedOutput{Data: buf.Bytes(), Padding: padding}, nil
}

// EncodeTo is like Encode, but streams the packed bytes to w as they become
// available.  It returns the number of bytes written and the padding count of
// the final byte.  A failure to write yields a *FileError.
func EncodeTo(w io.Writer, r io.Reader, table CodeTable) (int64, byte, error) {
	return encodeTo(w, r, &table, DefaultChunkSize)
}

func encodeTo(w io.Writer, r io.Reader, table *CodeTable, chunkSize int) (int64, byte, error) {
	bw := newBitWriter(w)
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		for _, ch := range buf[:n] {
			hc, found := table.Lookup(Symbol(ch))
			if !found {
				return bw.Written(), 0, &DataError{
					Op:  "encode",
					Err: fmt.Errorf("%w for symbol %d", ErrMissingCode, ch),
				}
			}
			bw.writeCode(hc)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return bw.Written(), 0, &FileError{Op: "read", Err: err}
		}
		if werr := bw.Err(); werr != nil {
			return bw.Written(), 0, &FileError{Op: "write", Err: werr}
		}
	}

	padding, err := bw.Close()
	if err != nil {
		return bw.Written(), 0, &FileError{Op: "write", Err: err}
	}
	return bw.Written(), padding, nil
}
