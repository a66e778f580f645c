package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestLocalStoreSave(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	path, err := store.Save(uploadHeader(t, "report.pdf", "report body"), "patients/reports")
	require.NoError(t, err)

	assert.Equal(t, "patients/reports", filepath.Dir(path))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(filepath.Join(root, path))
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))
}

func TestLocalStoreSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(uploadHeader(t, "photo.png", "a"), "nurses/profiles")
	require.NoError(t, err)
	second, err := store.Save(uploadHeader(t, "photo.png", "b"), "nurses/profiles")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStoreDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	path, err := store.Save(uploadHeader(t, "photo.jpg", "pixels"), "nurses/profiles")
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	_, err = os.Stat(filepath.Join(root, path))
	assert.True(t, os.IsNotExist(err))

	// Deleting an already removed file is not an error.
	assert.NoError(t, store.Delete(path))
}

func TestNewLocalStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")

	_, err := NewLocalStore(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
