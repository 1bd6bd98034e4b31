// Command huffpack compresses a file with a byte-level Huffman code.
//
// Usage:
//
//	huffpack [flags] <file>
//
// A bare filename is looked up in -input-dir.  The artifact is written to
// -output-dir as <stem>.bin (or <stem>.huf with -format=framed).  Raw
// artifacts store no code table and cannot be decompressed; framed ones can,
// with -d, in which case a bare filename is looked up in -output-dir.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chronos-tachyon/huffpack"
)

const (
	defaultInputDir  = "../Storage/Input"
	defaultOutputDir = "../Storage/Compressed"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("huffpack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputDir := fs.String("input-dir", defaultInputDir, "directory for bare input filenames")
	outputDir := fs.String("output-dir", defaultOutputDir, "directory for compressed output")
	outPath := fs.String("o", "", "output path (overrides -output-dir)")
	formatName := fs.String("format", "raw", "output format: raw or framed")
	decompress := fs.Bool("d", false, "decompress a framed file (requires -o)")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: huffpack [flags] <file>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	usageError := func(format string, args ...interface{}) int {
		fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
		fs.Usage()
		return exitUsage
	}

	if fs.NArg() != 1 {
		return usageError("expected 1 argument, got %d", fs.NArg())
	}

	format, err := huffpack.ParseFormat(*formatName)
	if err != nil {
		return usageError("%v", err)
	}

	lookupDir := *inputDir
	if *decompress {
		lookupDir = *outputDir
	}
	inputPath := resolveInput(fs.Arg(0), lookupDir)
	if _, err := os.Stat(inputPath); err != nil {
		return usageError("file does not exist: %s", inputPath)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	c := &huffpack.Compressor{
		Logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		Format: format,
	}

	if *decompress {
		if *outPath == "" {
			return usageError("-d requires -o")
		}
		return report(stderr, c.Decompress(inputPath, *outPath))
	}

	target := *outPath
	if target == "" {
		target = huffpack.OutputPath(*outputDir, inputPath, format)
	}
	_, err = c.Compress(huffpack.FileSource(inputPath), target)
	return report(stderr, err)
}

// resolveInput joins a bare filename onto dir; paths with a directory
// component are used as given.
func resolveInput(arg string, dir string) string {
	if filepath.Base(arg) == arg && arg != "." && arg != ".." {
		return filepath.Join(dir, arg)
	}
	return arg
}

func report(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	var fe *huffpack.FileError
	var de *huffpack.DataError
	switch {
	case errors.As(err, &fe):
		fmt.Fprintf(stderr, "FileError: %v\n", fe)
	case errors.As(err, &de):
		fmt.Fprintf(stderr, "DataError: %v\n", de)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitError
}
