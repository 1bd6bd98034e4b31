package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Usage(t *testing.T) {
	type testRow struct {
		name string
		args []string
	}

	testData := [...]testRow{
		{name: "no-args", args: nil},
		{name: "extra-args", args: []string{"a", "b"}},
		{name: "missing-file", args: []string{filepath.Join(t.TempDir(), "missing.txt")}},
		{name: "bad-format", args: []string{"-format", "zip", "x"}},
		{name: "bad-flag", args: []string{"-nope"}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stderr bytes.Buffer
			require.Equal(t, exitUsage, run(row.args, &stderr))
			require.Contains(t, stderr.String(), "Usage")
		})
	}
}

func TestRun_Compress(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "Input")
	outputDir := filepath.Join(dir, "Compressed")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("aab"), 0o644))

	var stderr bytes.Buffer
	code := run([]string{"-input-dir", inputDir, "-output-dir", outputDir, "notes.txt"}, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(outputDir, "notes.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xc0}, data)
}

func TestRun_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(inPath, nil, 0o644))
	outputDir := filepath.Join(dir, "Compressed")

	var stderr bytes.Buffer
	require.Equal(t, exitError, run([]string{"-output-dir", outputDir, inPath}, &stderr))
	require.Contains(t, stderr.String(), "DataError: ")

	_, err := os.Stat(filepath.Join(outputDir, "empty.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_FramedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := []byte("she sells sea shells by the sea shore")
	inPath := filepath.Join(dir, "shells.txt")
	require.NoError(t, os.WriteFile(inPath, input, 0o644))
	packedPath := filepath.Join(dir, "shells.huf")
	restoredPath := filepath.Join(dir, "restored.txt")

	var stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-format", "framed", "-o", packedPath, inPath}, &stderr), stderr.String())
	require.Equal(t, exitUsage, run([]string{"-d", packedPath}, &stderr))
	require.Equal(t, exitOK, run([]string{"-d", "-o", restoredPath, packedPath}, &stderr), stderr.String())

	data, err := os.ReadFile(restoredPath)
	require.NoError(t, err)
	require.Equal(t, input, data)
}

func TestRun_DecompressBareName(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "Input")
	outputDir := filepath.Join(dir, "Compressed")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	input := []byte("peter piper picked a peck of pickled peppers")
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "piper.txt"), input, 0o644))
	restoredPath := filepath.Join(dir, "restored.txt")

	var stderr bytes.Buffer
	dirs := []string{"-input-dir", inputDir, "-output-dir", outputDir}
	require.Equal(t, exitOK, run(append(dirs, "-format", "framed", "piper.txt"), &stderr), stderr.String())
	require.FileExists(t, filepath.Join(outputDir, "piper.huf"))

	require.Equal(t, exitOK, run(append(dirs, "-d", "-o", restoredPath, "piper.huf"), &stderr), stderr.String())

	data, err := os.ReadFile(restoredPath)
	require.NoError(t, err)
	require.Equal(t, input, data)
}

func TestResolveInput(t *testing.T) {
	require.Equal(t, filepath.Join("in", "a.txt"), resolveInput("a.txt", "in"))
	require.Equal(t, filepath.Join("sub", "a.txt"), resolveInput(filepath.Join("sub", "a.txt"), "in"))
	require.Equal(t, "/abs/a.txt", resolveInput("/abs/a.txt", "in"))
}
