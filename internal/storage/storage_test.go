package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openshop-kr/journey-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store, err := NewLocalStorage(base, "/files/")
	require.NoError(t, err)

	t.Run("upload and download", func(t *testing.T) {
		storagePath, size, err := store.Upload(ctx, "/projects/abc/", "Menu.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
		require.NoError(t, err)
		assert.Equal(t, int64(10), size)
		assert.True(t, strings.HasPrefix(storagePath, "projects/abc/"))
		assert.True(t, strings.HasSuffix(storagePath, ".jpg"))

		_, err = os.Stat(filepath.Join(base, filepath.FromSlash(storagePath)))
		require.NoError(t, err)

		rc, err := store.Download(ctx, storagePath)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(data))

		assert.Equal(t, "/files/"+storagePath, store.URL(storagePath))
	})

	t.Run("names are unique", func(t *testing.T) {
		a, _, err := store.Upload(ctx, "x", "a.png", "image/png", strings.NewReader("1"))
		require.NoError(t, err)
		b, _, err := store.Upload(ctx, "x", "a.png", "image/png", strings.NewReader("2"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := store.Download(ctx, "projects/none.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("traversal stays inside the base path", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(base), "secret.txt")
		require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))
		t.Cleanup(func() { _ = os.Remove(outside) })

		_, err := store.Download(ctx, "../secret.txt")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestObjectName(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, objectName("", "A.PNG"))
	assert.Regexp(t, `^a/b/[0-9a-f-]{36}$`, objectName("/a/b/", "noext"))
}

func TestNewStorage(t *testing.T) {
	logger := zap.NewNop()

	store, err := NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir(), PublicBaseURL: "/files"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = NewStorage(&config.StorageConfig{Mode: "azure"}, logger)
	assert.Error(t, err)

	_, err = NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
	assert.Error(t, err)
}
