package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStorage persists raw attachment bytes and hands back an opaque path.
type FileStorage interface {
	Store(fileName string, data []byte) (string, error)
	Delete(path string) error
}

// LocalFileStorage writes attachments under a base directory on local disk.
type LocalFileStorage struct {
	baseDir string
}

func NewLocalFileStorage(baseDir string) (*LocalFileStorage, error) {
	if baseDir == "" {
		baseDir = "attachments"
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}
	return &LocalFileStorage{baseDir: baseDir}, nil
}

func (s *LocalFileStorage) Store(fileName string, data []byte) (string, error) {
	// Prefix with a uuid so colliding upload names never overwrite each other.
	path := filepath.Join(s.baseDir, uuid.New().String()+"_"+filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return path, nil
}

func (s *LocalFileStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
