package huffpack

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is wrapped by a DataError when the input has no bytes.
	ErrEmptyInput = errors.New("input is empty")

	// ErrEmptyTable is wrapped by a DataError when a FrequencyTable has no
	// symbols with a non-zero count.
	ErrEmptyTable = errors.New("frequency table is empty")

	// ErrNilTree is wrapped by a DataError when code generation is asked
	// to walk a tree that was never built.
	ErrNilTree = errors.New("null huffman tree")

	// ErrNoCodes is wrapped by a DataError when code generation produced
	// no codes at all.
	ErrNoCodes = errors.New("huffman code generation failed")

	// ErrMissingCode is wrapped by a DataError when the encoder meets a
	// byte that has no code.  This happens only when the input changed
	// between the counting pass and the encoding pass.
	ErrMissingCode = errors.New("missing code")

	// ErrBadContainer is wrapped by a DataError when a framed file cannot
	// be parsed.
	ErrBadContainer = errors.New("malformed framed container")
)

// FileError reports an I/O failure: the input cannot be opened or read, or
// the output cannot be created or written.
type FileError struct {
	Op   string
	Path string
	Err  error
}

// Error fulfills error.
func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// DataError reports a logical failure in the data flowing through the
// pipeline, e.g. an empty input or a symbol without a code.
type DataError struct {
	Op  string
	Err error
}

// Error fulfills error.
func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause, usually one of the Err* sentinels.
func (e *DataError) Unwrap() error {
	return e.Err
}

var (
	_ error = (*FileError)(nil)
	_ error = (*DataError)(nil)
)
