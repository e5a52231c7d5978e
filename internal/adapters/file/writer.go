package file

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aretw0/eventgrid/pkg/domain"
)

// WriteAtomic replaces path with data so that readers see either the old
// file or the complete new one, never a partial document. On Windows the old
// file is removed before the rename, so there the target briefly disappears.
// It writes to a temporary file in the target directory, syncs it, and then
// renames it over the destination. Failures are *domain.IOError for path.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("empty output path")}
	}
	dir := filepath.Dir(path)

	// 1. Create Temp File
	// Same directory as the destination, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	tmpPath := tmpFile.Name()

	// Removes the temp file on every failure path; after the rename it is gone.
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("temp file: %w", err)}
	}

	// 3. Fsync
	if err := tmpFile.Sync(); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("fsync temp file: %w", err)}
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("chmod temp file: %w", err)}
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("close temp file: %w", err)}
	}

	// 5. Rename
	// POSIX rename replaces the destination atomically. On Windows os.Rename
	// fails if dest exists, so the old file has to go first there.
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("is a directory")}
	}
	if runtime.GOOS == "windows" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("remove existing file: %w", err)}
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("rename temp file: %w", err)}
	}

	return nil
}
