package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "syllabus.txt")
	require.NoError(t, os.WriteFile(path, []byte("Math exam on December 15"), 0o644))

	text, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Math exam on December 15", text)
}

func TestReadTextFileRejectsBinaryExtensions(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"notes.pdf", "photo.JPG", "scan.png"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))

		_, err := ReadTextFile(path)
		assert.ErrorIs(t, err, ErrBinaryContent, name)
	}
}

func TestReadTextFileRejectsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.dat")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0xFF, 0x00}, 0o644))

	_, err := ReadTextFile(path)
	assert.ErrorIs(t, err, ErrBinaryContent)
}

func TestReadTextFileMissing(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBinaryContent)
}
