package huffpack

import (
	"bufio"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating the containing directories as
// needed.
//
// The bytes go to a temporary file in the same directory, which is renamed
// into place only after it has been completely written and closed.  On any
// failure the temporary file is removed, so path never holds a truncated
// artifact.  Failures are reported as *FileError.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileError{Op: "mkdir", Path: dir, Err: err}
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}
	tmpPath := f.Name()

	needClose := true
	defer func() {
		if needClose {
			_ = f.Close()
		}
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(data); err != nil {
		return &FileError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &FileError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := f.Chmod(0o644); err != nil {
		return &FileError{Op: "chmod", Path: tmpPath, Err: err}
	}

	needClose = false
	if err := f.Close(); err != nil {
		return &FileError{Op: "close", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &FileError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
