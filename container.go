package huffpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Format selects the on-disk layout of a compressed artifact.
type Format byte

const (
	// FormatRaw writes only the packed bitstream.  The artifact cannot be
	// decoded without the in-memory CodeTable of the run that made it.
	FormatRaw Format = iota

	// FormatFramed prefixes the bitstream with a header carrying the
	// frequency table and the padding count.
	FormatFramed
)

// String returns the flag spelling of this Format.
func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatFramed:
		return "framed"
	default:
		return fmt.Sprintf("Format(%d)", byte(f))
	}
}

// Ext returns the file extension used for artifacts in this Format.
func (f Format) Ext() string {
	if f == FormatFramed {
		return ".huf"
	}
	return ".bin"
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(str string) (Format, error) {
	switch str {
	case "raw":
		return FormatRaw, nil
	case "framed":
		return FormatFramed, nil
	default:
		return 0, fmt.Errorf("unknown format %q, expected \"raw\" or \"framed\"", str)
	}
}

const (
	framedMagic   = "HUFP"
	framedVersion = 1
)

// MarshalFramed serializes a frequency table and its packed bitstream:
//
//	"HUFP" | version | padding | uvarint(n) | n × (symbol, uvarint(freq)) | data
//
// Symbols appear in ascending order.  A reader rebuilds the exact tree with
// BuildTree, whose tie-breaking is deterministic.
func MarshalFramed(freq FrequencyTable, packed PackedOutput) []byte {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	buf.WriteString(framedMagic)
	buf.WriteByte(framedVersion)
	buf.WriteByte(packed.Padding)
	buf.Write(tmp[:binary.PutUvarint(tmp[:], uint64(freq.Len()))])
	for symbol, count := range freq {
		if count == 0 {
			continue
		}
		buf.WriteByte(byte(symbol))
		buf.Write(tmp[:binary.PutUvarint(tmp[:], count)])
	}
	buf.Write(packed.Data)
	return buf.Bytes()
}

// UnmarshalFramed parses the output of MarshalFramed.  Malformed input yields
// a *DataError wrapping ErrBadContainer.
func UnmarshalFramed(raw []byte) (FrequencyTable, PackedOutput, error) {
	fail := func(format string, args ...interface{}) (FrequencyTable, PackedOutput, error) {
		return FrequencyTable{}, PackedOutput{}, &DataError{
			Op:  "unmarshal",
			Err: fmt.Errorf("%w: "+format, append([]interface{}{ErrBadContainer}, args...)...),
		}
	}

	if len(raw) < len(framedMagic)+2 || string(raw[:len(framedMagic)]) != framedMagic {
		return fail("missing magic %q", framedMagic)
	}
	raw = raw[len(framedMagic):]

	if version := raw[0]; version != framedVersion {
		return fail("unsupported version %d", version)
	}
	padding := raw[1]
	if padding > 7 {
		return fail("invalid padding %d", padding)
	}
	raw = raw[2:]

	numSymbols, n := binary.Uvarint(raw)
	if n <= 0 || numSymbols == 0 || numSymbols > NumSymbols {
		return fail("invalid symbol count")
	}
	raw = raw[n:]

	var freq FrequencyTable
	last := -1
	for i := uint64(0); i < numSymbols; i++ {
		if len(raw) == 0 {
			return fail("truncated symbol table")
		}
		symbol := int(raw[0])
		if symbol <= last {
			return fail("symbol %d out of order", symbol)
		}
		last = symbol

		count, n := binary.Uvarint(raw[1:])
		if n <= 0 || count == 0 {
			return fail("invalid count for symbol %d", symbol)
		}
		freq[symbol] = count
		raw = raw[1+n:]
	}

	if len(raw) == 0 && padding != 0 {
		return fail("padding %d without data", padding)
	}

	data := make([]byte, len(raw))
	copy(data, raw)
	return freq, PackedOutput{Data: data, Padding: padding}, nil
}
