package huffpack

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "notes.bin"), OutputPath("out", "/data/notes.txt", FormatRaw))
	require.Equal(t, filepath.Join("out", "archive.tar.huf"), OutputPath("out", "archive.tar.gz", FormatFramed))
	require.Equal(t, filepath.Join("out", "README.bin"), OutputPath("out", "README", FormatRaw))
}

func TestCompressor_Compress(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("aab"), 0o644))

	var logs bytes.Buffer
	c := &Compressor{Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	outPath := OutputPath(filepath.Join(dir, "Compressed"), inPath, c.Format)

	result, err := c.Compress(FileSource(inPath), outPath)
	require.NoError(t, err)
	require.Equal(t, uint64(3), result.InputSize)
	require.Equal(t, PackedOutput{Data: []byte{0xc0}, Padding: 5}, result.Output)
	require.Equal(t, 2, result.Codes.Len())
	require.Equal(t, 1, result.Tree.NumInternal())
	require.Equal(t, int64(1), result.OutputSize)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc0}, data)

	for _, msg := range []string{"counted frequencies", "frequency table", "built huffman tree", "generated codes", "encoded data", "wrote output"} {
		require.Contains(t, logs.String(), msg)
	}
}

func TestCompressor_ChunkSize(t *testing.T) {
	input := []byte(strings.Repeat("mississippi ", 50))
	outPath := filepath.Join(t.TempDir(), "out.bin")

	small := &Compressor{ChunkSize: 5}
	r1, err := small.Compress(BytesSource("small", input), outPath)
	require.NoError(t, err)

	var large Compressor
	r2, err := large.Compress(BytesSource("large", input), outPath)
	require.NoError(t, err)

	require.Equal(t, r2.Frequencies, r1.Frequencies)
	require.Equal(t, r2.Output, r1.Output)
}

func TestCompressor_MissingInput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out", "missing.bin")

	var c Compressor
	_, err := c.Compress(FileSource(filepath.Join(dir, "missing.txt")), outPath)
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "open", fe.Op)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(filepath.Dir(outPath))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressor_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(inPath, nil, 0o644))
	outPath := OutputPath(dir, inPath, FormatRaw)

	var c Compressor
	_, err := c.Compress(FileSource(inPath), outPath)
	var de *DataError
	require.ErrorAs(t, err, &de)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = os.Stat(outPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// mutatingSource yields a different byte stream on every Open.
type mutatingSource struct {
	passes [][]byte
	opened int
}

func (src *mutatingSource) Open() (io.ReadCloser, error) {
	data := src.passes[src.opened]
	src.opened++
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (src *mutatingSource) Name() string {
	return "mutating"
}

func TestCompressor_InputChangedBetweenPasses(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.bin")
	src := &mutatingSource{passes: [][]byte{[]byte("aab"), []byte("aac")}}

	var c Compressor
	_, err := c.Compress(src, outPath)
	var de *DataError
	require.ErrorAs(t, err, &de)
	require.ErrorIs(t, err, ErrMissingCode)
	require.Equal(t, 2, src.opened)

	_, err = os.Stat(outPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressor_FramedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := []byte(strings.Repeat("abracadabra, ", 97) + "\x00\xff")
	inPath := filepath.Join(dir, "magic.txt")
	require.NoError(t, os.WriteFile(inPath, input, 0o644))

	c := &Compressor{Format: FormatFramed}
	outPath := OutputPath(filepath.Join(dir, "Compressed"), inPath, c.Format)
	require.Equal(t, ".huf", filepath.Ext(outPath))

	result, err := c.Compress(FileSource(inPath), outPath)
	require.NoError(t, err)
	require.Greater(t, result.OutputSize, int64(len(result.Output.Data)))

	restored := filepath.Join(dir, "Decompressed", "magic.txt")
	require.NoError(t, c.Decompress(outPath, restored))

	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, input, data)
}

func TestCompressor_DecompressRaw(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.bin")

	var c Compressor
	_, err := c.Compress(BytesSource("aab", []byte("aab")), outPath)
	require.NoError(t, err)

	err = c.Decompress(outPath, filepath.Join(dir, "restored"))
	require.ErrorIs(t, err, ErrBadContainer)

	err = c.Decompress(filepath.Join(dir, "nope.huf"), filepath.Join(dir, "restored"))
	var fe *FileError
	require.ErrorAs(t, err, &fe)
}

func TestCompressor_DecompressLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "bad.huf")

	// Header claims 'a' × 2 and 'b' × 1 but the payload decodes to "aabb".
	raw := MarshalFramed(FrequencyTable{'a': 2, 'b': 1}, PackedOutput{Data: []byte{0xc0}, Padding: 4})
	require.NoError(t, os.WriteFile(inPath, raw, 0o644))

	var c Compressor
	err := c.Decompress(inPath, filepath.Join(dir, "restored"))
	var de *DataError
	require.ErrorAs(t, err, &de)
	require.ErrorIs(t, err, ErrBadContainer)
}
