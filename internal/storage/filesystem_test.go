package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_WriteReadListDelete(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("WIDESCREEN_DATA_DIR", tmp)

	fs, err := NewFileStore()
	require.NoError(t, err)

	path, err := fs.WriteSessionFile("research", []byte("name: research\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "sessions", "research.yaml"), path)
	_, err = fs.WriteSessionFile("alpha", []byte("name: alpha\n"))
	require.NoError(t, err)

	content, info, err := fs.ReadSessionFile("research")
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, "name: research\n", string(content))

	names, err := fs.ListSessionFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "research"}, names)

	require.NoError(t, fs.DeleteSessionFile("research"))
	_, info, err = fs.ReadSessionFile("research")
	require.NoError(t, err)
	assert.False(t, info.Exists)

	// Deleting twice is not an error
	require.NoError(t, fs.DeleteSessionFile("research"))
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	fs := NewFileStoreAt(t.TempDir())

	for _, name := range []string{"", "  ", "../escape", `a\b`, ".."} {
		_, err := fs.SessionPath(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	fs := NewFileStoreAt(filepath.Join(t.TempDir(), "missing"))
	names, err := fs.ListSessionFiles()
	require.NoError(t, err)
	assert.Empty(t, names)
}
