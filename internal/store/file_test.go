package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhotoStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	ps := NewPhotoStore(dir)

	path, err := ps.Save(3, "DONE.JPG", strings.NewReader("photo-bytes"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "project_3.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "photo-bytes", string(data))

	require.NoError(t, ps.Remove(path))
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Removing an already-gone photo is not an error
	require.NoError(t, ps.Remove(path))
}

func TestPhotoStoreRemoveStaysInsideDir(t *testing.T) {
	ps := NewPhotoStore(t.TempDir())

	require.Error(t, ps.Remove(""))
	require.Error(t, ps.Remove("/etc/passwd"))
	require.Error(t, ps.Remove(filepath.Join(t.TempDir(), "project_1.jpg")))
}
