package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore saves uploaded files under a local root directory. Files
// get generated names so uploads can never collide or traverse paths.
type FileStore interface {
	Save(file *multipart.FileHeader, subdir string) (string, error)
	Delete(path string) error
}

type localStore struct {
	root string
}

func NewLocalStore(root string) (FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return &localStore{root: root}, nil
}

// Save writes the upload under root/subdir with a random name and
// returns the path relative to the root.
func (s *localStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.Join(subdir, name), nil
}

func (s *localStore) Delete(path string) error {
	full := filepath.Join(s.root, filepath.Clean(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
