package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "exports")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o600))

	require.Error(t, EnsureDir(dir))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFileAtomic(dir, "out.json", []byte("first"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "out.json"), path)

	_, err = WriteFileAtomic(dir, "out.json", []byte("second"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
}
