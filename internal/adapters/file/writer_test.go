package file_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/eventgrid/internal/adapters/file"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.TextGrid")

	require.NoError(t, file.WriteAtomic(path, []byte("first"), 0644))
	require.NoError(t, file.WriteAtomic(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.TextGrid")
	err := file.WriteAtomic(path, []byte("x"), 0644)

	var ioErr *domain.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
	assert.Equal(t, "write", ioErr.Op)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteAtomic_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(target, 0755))

	err := file.WriteAtomic(target, []byte("x"), 0644)
	var ioErr *domain.IOError
	assert.True(t, errors.As(err, &ioErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic_TargetNeverMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("rename cannot replace an existing file on windows")
	}
	path := filepath.Join(t.TempDir(), "out.TextGrid")
	require.NoError(t, file.WriteAtomic(path, []byte("v0"), 0644))

	var stop atomic.Bool
	var missing atomic.Int64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for !stop.Load() {
			if _, err := os.Stat(path); err != nil {
				missing.Add(1)
			}
		}
	}()

	for i := 0; i < 200; i++ {
		require.NoError(t, file.WriteAtomic(path, []byte("next"), 0644))
	}
	stop.Store(true)
	wg.Wait()

	assert.Zero(t, missing.Load(), "readers observed the output path missing")
}

func TestWriteAtomic_KeepsOldFileWhenRenameFails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("read-only directories behave differently on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "out.TextGrid")
	require.NoError(t, file.WriteAtomic(path, []byte("old"), 0644))

	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	err := file.WriteAtomic(path, []byte("new"), 0644)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}
