package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TWO.PDF"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "three.pdf"), []byte("x"), 0o644))

	paths, stats, err := ScanDirectory(dir, true)
	require.NoError(t, err)

	assert.Len(t, paths, 3)
	assert.EqualValues(t, 3, stats.Matched)
	assert.EqualValues(t, 0, stats.Failed)
}

func TestScanDirectorySkipsHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cache", "cached.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.pdf"), []byte("x"), 0o644))

	paths, stats, err := ScanDirectory(dir, true)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "visible.pdf"), paths[0])
	assert.EqualValues(t, 1, stats.Matched)
}

func TestScanDirectoryEmptyRoot(t *testing.T) {
	_, _, err := ScanDirectory("  ", true)
	assert.Error(t, err)
}
