package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMigrationName(t *testing.T) {
	v, name, ok := splitMigrationName("001_initial_schema.sql")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, "initial_schema", name)

	v, name, ok = splitMigrationName("012_add_projects_index.sql")
	require.True(t, ok)
	require.Equal(t, 12, v)
	require.Equal(t, "add_projects_index", name)

	_, _, ok = splitMigrationName("notes.sql")
	require.False(t, ok)
	_, _, ok = splitMigrationName("_leading.sql")
	require.False(t, ok)
}

func TestReadMigrationsSortsByVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_second.sql"), []byte("SELECT 2;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_first.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	migrations, err := readMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	require.Equal(t, "first", migrations[0].Name)
	require.Equal(t, "second", migrations[1].Name)
	require.Equal(t, "SELECT 1;", migrations[0].SQL)
}

func TestNewRequiresConnectionString(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}
