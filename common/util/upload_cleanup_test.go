package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldUploads(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := filepath.Join(dir, "old.csv")
	fresh := filepath.Join(dir, "fresh.xlsx")
	require.NoError(t, os.WriteFile(old, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("b"), 0o600))
	require.NoError(t, os.Chtimes(old, now.Add(-10*24*time.Hour), now.Add(-10*24*time.Hour)))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	removed := CleanupOldUploads(dir, 7*24*time.Hour, now)

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestCleanupOldUploads_MissingDir(t *testing.T) {
	assert.Zero(t, CleanupOldUploads(filepath.Join(t.TempDir(), "absent"), time.Hour, time.Now()))
}
