package huffpack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Source supplies the input of a compression run.  Open is called once per
// pass, and every returned reader must yield the same bytes.
type Source interface {
	Open() (io.ReadCloser, error)
	Name() string
}

// FileSource returns a Source that re-opens the named file for each pass.
func FileSource(path string) Source {
	return fileSource(path)
}

type fileSource string

func (src fileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(string(src))
	if err != nil {
		return nil, &FileError{Op: "open", Path: string(src), Err: err}
	}
	return f, nil
}

func (src fileSource) Name() string {
	return string(src)
}

// BytesSource returns a Source over an in-memory copy of the input, for
// callers who prefer to buffer the input once instead of reading it twice.
func BytesSource(name string, data []byte) Source {
	return bytesSource{name, data}
}

type bytesSource struct {
	name string
	data []byte
}

func (src bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(src.data)), nil
}

func (src bytesSource) Name() string {
	return src.name
}

// Result describes a successful compression run.
type Result struct {
	Frequencies FrequencyTable
	Tree        *Tree
	Codes       CodeTable
	Output      PackedOutput
	InputSize   uint64
	OutputPath  string
	OutputSize  int64
}

// Compressor runs the compression pipeline.  The zero value is ready to use:
// it writes FormatRaw, reads DefaultChunkSize bytes at a time and logs
// nothing.
type Compressor struct {
	Logger    *slog.Logger
	Format    Format
	ChunkSize int
}

// OutputPath returns "<dir>/<stem><ext>" for the given input, where stem is
// the input's base name without its extension and ext is format.Ext().
func OutputPath(dir string, inputPath string, format Format) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+format.Ext())
}

// Compress runs every stage over src and writes the artifact to outPath.
//
// The input is read twice: once to count frequencies and once to encode.
// Nothing is written unless every stage succeeds.  Errors are *FileError or
// *DataError.
func (c *Compressor) Compress(src Source, outPath string) (*Result, error) {
	logger := c.logger().With(slog.String("input", src.Name()))
	chunkSize := c.chunkSize()

	freq, err := c.countPass(src, chunkSize)
	if err != nil {
		return nil, err
	}
	logger.Info("counted frequencies", slog.Int("symbols", freq.Len()), slog.Uint64("bytes", freq.Total()))
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		var sb strings.Builder
		_, _ = freq.Dump(&sb)
		logger.Debug("frequency table", slog.String("dump", sb.String()))
	}

	tree, err := BuildTree(freq)
	if err != nil {
		return nil, err
	}
	logger.Info("built huffman tree", slog.Int("leaves", tree.NumLeaves()), slog.Int("internal", tree.NumInternal()))

	codes, err := GenerateCodes(tree)
	if err != nil {
		return nil, err
	}
	logger.Info("generated codes", slog.Int("min_bits", int(codes.MinSize())), slog.Int("max_bits", int(codes.MaxSize())))

	packed, err := c.encodePass(src, &codes, chunkSize)
	if err != nil {
		return nil, err
	}
	logger.Info("encoded data", slog.Int("bytes", len(packed.Data)), slog.Int("padding", int(packed.Padding)))

	data := packed.Data
	if c.Format == FormatFramed {
		data = MarshalFramed(freq, packed)
	}
	if err := WriteFile(outPath, data); err != nil {
		return nil, err
	}
	logger.Info("wrote output", slog.String("path", outPath), slog.String("format", c.Format.String()), slog.Int("bytes", len(data)))

	return &Result{
		Frequencies: freq,
		Tree:        tree,
		Codes:       codes,
		Output:      packed,
		InputSize:   freq.Total(),
		OutputPath:  outPath,
		OutputSize:  int64(len(data)),
	}, nil
}

func (c *Compressor) countPass(src Source, chunkSize int) (FrequencyTable, error) {
	rc, err := src.Open()
	if err != nil {
		return FrequencyTable{}, asFileError(err, "open", src.Name())
	}
	defer rc.Close()

	freq, err := CountFrequenciesSize(rc, chunkSize)
	if err != nil {
		return FrequencyTable{}, withPath(err, src.Name())
	}
	return freq, nil
}

func (c *Compressor) encodePass(src Source, codes *CodeTable, chunkSize int) (PackedOutput, error) {
	rc, err := src.Open()
	if err != nil {
		return PackedOutput{}, asFileError(err, "open", src.Name())
	}
	defer rc.Close()

	var buf bytes.Buffer
	_, padding, err := encodeTo(&buf, rc, codes, chunkSize)
	if err != nil {
		return PackedOutput{}, withPath(err, src.Name())
	}
	return PackedOutput{Data: buf.Bytes(), Padding: padding}, nil
}

// Decompress reads a FormatFramed artifact from inPath and writes the
// original bytes to outPath.  Raw artifacts carry no code table and cannot
// be decompressed.
func (c *Compressor) Decompress(inPath string, outPath string) error {
	logger := c.logger().With(slog.String("input", inPath))

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return &FileError{Op: "read", Path: inPath, Err: err}
	}

	freq, packed, err := UnmarshalFramed(raw)
	if err != nil {
		return err
	}

	tree, err := BuildTree(freq)
	if err != nil {
		return err
	}

	data, err := Decode(tree, packed)
	if err != nil {
		return err
	}
	if uint64(len(data)) != freq.Total() {
		return &DataError{
			Op:  "decompress",
			Err: fmt.Errorf("%w: decoded %d bytes, header says %d", ErrBadContainer, len(data), freq.Total()),
		}
	}
	logger.Info("decoded data", slog.Int("bytes", len(data)))

	if err := WriteFile(outPath, data); err != nil {
		return err
	}
	logger.Info("wrote output", slog.String("path", outPath))
	return nil
}

func (c *Compressor) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(discardHandler{})
	}
	return c.Logger
}

func (c *Compressor) chunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

func asFileError(err error, op string, path string) error {
	switch err.(type) {
	case *FileError, *DataError:
		return err
	default:
		return &FileError{Op: op, Path: path, Err: err}
	}
}

func withPath(err error, path string) error {
	if fe, ok := err.(*FileError); ok && fe.Path == "" {
		fe.Path = path
	}
	return err
}

// discardHandler is a slog.Handler that drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool {
	return false
}

func (discardHandler) Handle(context.Context, slog.Record) error {
	return nil
}

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h discardHandler) WithGroup(string) slog.Handler {
	return h
}
