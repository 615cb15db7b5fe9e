package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "logs", "speeddial.log"), ExpandTilde("~/logs/speeddial.log"))
	assert.Equal(t, "~other/file", ExpandTilde("~other/file"))
	assert.Equal(t, "/var/log/speeddial.log", ExpandTilde("/var/log/speeddial.log"))
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "file.log")

	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureParentDir("file.log"))
}
