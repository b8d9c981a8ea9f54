package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded files and returns an opaque path usable for
// later retrieval.
type FileStore interface {
	Save(filename string, content io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
}

// LocalFileStore keeps uploads on the local filesystem under a single base
// directory. Stored names are random so upload names can never collide or
// escape the directory.
type LocalFileStore struct {
	baseDir string
	logger  *slog.Logger
}

func NewLocalFileStore(baseDir string, logger *slog.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", baseDir, err)
	}
	return &LocalFileStore{baseDir: baseDir, logger: logger}, nil
}

func (s *LocalFileStore) Save(filename string, content io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	stored := uuid.New().String() + ext

	fullPath := filepath.Join(s.baseDir, stored)
	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, content)
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	s.logger.Info("file stored", "path", stored, "bytes", written, "original_name", filename)
	return stored, nil
}

func (s *LocalFileStore) Open(path string) (io.ReadCloser, error) {
	// stored paths are always bare generated names, reject anything else
	if filepath.Base(path) != path {
		return nil, fmt.Errorf("invalid stored path: %s", path)
	}
	return os.Open(filepath.Join(s.baseDir, path))
}
