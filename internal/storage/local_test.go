package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsgholding/cms-backend/internal/model"
)

func TestClassifyMime(t *testing.T) {
	cases := map[string]string{
		"image/png":       model.MediaImage,
		"image/jpeg":      model.MediaImage,
		"video/mp4":       model.MediaVideo,
		"application/pdf": model.MediaDocument,
		"text/plain":      model.MediaDocument,
		" IMAGE/PNG ":     model.MediaImage,
	}
	for mime, want := range cases {
		got, err := ClassifyMime(mime)
		require.NoError(t, err, mime)
		assert.Equal(t, want, got, mime)
	}

	for _, mime := range []string{"application/zip", "text/html", ""} {
		_, err := ClassifyMime(mime)
		assert.ErrorIs(t, err, ErrUnsupportedType, mime)
	}
}

func TestLocalStoreDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, 0)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	target := filepath.Join(dir, "images", "x.png")
	require.NoError(t, os.WriteFile(target, []byte("png"), 0o644))

	require.NoError(t, s.Delete("/uploads/images/x.png"))
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	// Deleting an already-missing file is not an error.
	assert.NoError(t, s.Delete("/uploads/images/x.png"))
}

func TestLocalStoreDeleteConfinement(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, 0)

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))
	defer os.Remove(outside)

	// Traversal attempts either error out or resolve inside the store dir;
	// the file outside must survive in both cases.
	_ = s.Delete("/uploads/../victim.txt")
	_ = s.Delete("../victim.txt")

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
