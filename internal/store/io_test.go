package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesDirAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("a: 1\n"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("a: 2\n"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(b))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReadJSON_MissingFileLeavesValue(t *testing.T) {
	out := map[string]int{"kept": 1}
	require.NoError(t, readJSON(filepath.Join(t.TempDir(), "absent.json"), &out))
	assert.Equal(t, map[string]int{"kept": 1}, out)
}
