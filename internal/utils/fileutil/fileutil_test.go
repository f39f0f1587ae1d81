package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()

	t.Run("keeps terminators", func(t *testing.T) {
		path := filepath.Join(dir, "a.json")
		require.NoError(t, os.WriteFile(path, []byte("{\"test\": \"data\"}\n"), 0600))

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"{\"test\": \"data\"}\n"}, lines)
	})

	t.Run("last line without newline", func(t *testing.T) {
		path := filepath.Join(dir, "b.json")
		require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\n\nthree"), 0600))

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"one\r\n", "two\n", "\n", "three"}, lines)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0600))

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadLines(filepath.Join(dir, "missing.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadLines(dir)
		assert.Error(t, err)
	})
}

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, AtomicWriteFile(path, []byte("a: 1\n"), 0600))
	require.NoError(t, AtomicWriteFile(path, []byte("a: 2\n"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(data))
	assert.True(t, Exists(path))
	assert.False(t, Exists(path+".missing"))
}
