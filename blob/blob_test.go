package blob

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var namePattern = regexp.MustCompile(`^/uploads/\d+-\d+\.png$`)

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	url, err := s.Save([]byte("png bytes"), "photo.png")
	require.NoError(t, err)
	assert.Regexp(t, namePattern, url)

	b, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), b)
}

func TestSaveKeepsOriginalExtension(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	url, err := s.Save([]byte("x"), "banner.jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpeg"))

	url, err = s.Save([]byte("x"), "noextension")
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/\d+-\d+$`, url)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
