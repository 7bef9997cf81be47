package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesUpAndDownFiles(t *testing.T) {
	dir := t.TempDir()

	pair, err := Create(dir, "add payment indexes")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(pair.UpPath), "add_payment_indexes.up.sql")
	assert.Contains(t, filepath.Base(pair.DownPath), "add_payment_indexes.down.sql")
	assert.Len(t, pair.Version, 14)

	up, err := os.ReadFile(pair.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add payment indexes")

	_, err = os.Stat(pair.DownPath)
	require.NoError(t, err)
}

func TestList_ReturnsSortedPairBaseNames(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"20240102000000_second.up.sql",
		"20240102000000_second.down.sql",
		"20240101000000_first.up.sql",
		"20240101000000_first.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101000000_first", "20240102000000_second"}, names)
}

func TestList_MissingDirectoryIsEmpty(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Payment Indexes", "add_payment_indexes"},
		{"fix--receipt  seq", "fix_receipt_seq"},
		{"trailing ", "trailing"},
		{"v2", "v2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
