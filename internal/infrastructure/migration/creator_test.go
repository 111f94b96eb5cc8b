package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add reserved index", "add_reserved_index"},
		{"Add-Reserved-Index", "add_reserved_index"},
		{"ADD__RESERVED__INDEX", "add_reserved_index"},
		{"  spaced  out  ", "spaced_out"},
		{"stock!@#movements", "stockmovements"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersAfterLatest(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"000001_init_schema.up.sql", "000001_init_schema.down.sql", "000007_add_bins.up.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}

	mf, err := CreateMigration(dir, "Add reorder policy", "Per-warehouse reorder levels")
	require.NoError(t, err)

	assert.Equal(t, uint(8), mf.Version)
	assert.Equal(t, filepath.Join(dir, "000008_add_reorder_policy.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000008_add_reorder_policy.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_reorder_policy")
	assert.Contains(t, string(up), "Per-warehouse reorder levels")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")
}

func TestCreateMigration_EmptyDirectoryStartsAtOne(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)
	assert.Equal(t, uint(1), mf.Version)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsUnusableName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000010_late.up.sql":          {Data: []byte("--")},
		"000010_late.down.sql":        {Data: []byte("--")},
		"000002_add_movements.up.sql": {Data: []byte("--")},
		"000001_init.up.sql":          {Data: []byte("--")},
		"000001_init.down.sql":        {Data: []byte("--")},
		"README.md":                   {Data: []byte("docs")},
		"subdir.up.sql/keep":          {Data: []byte("")},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_add_movements", "000010_late"}, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbedded(t *testing.T) {
	names, err := Embedded()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "000001_init_schema", names[0])
}
