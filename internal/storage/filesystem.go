package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"dbsnap/internal/snap"
)

// FileSystemStorage stores archive blobs as flat files under a root
// directory. Writes are atomic (temp file + rename) so a crashed create never
// leaves a half-written archive for the registry to find.
type FileSystemStorage struct {
	root string
}

// NewFileSystemStorage creates a filesystem storage rooted at the given path,
// creating the directory if needed.
func NewFileSystemStorage(root string) (*FileSystemStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystemStorage{root: root}, nil
}

// Put stores a blob under the given name, overwriting any existing file.
func (s *FileSystemStorage) Put(name string, data []byte) error {
	destPath := filepath.Join(s.root, name)

	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Get retrieves a blob by name.
func (s *FileSystemStorage) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %s", name)
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Delete removes a blob by name.
func (s *FileSystemStorage) Delete(name string) error {
	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// List returns the names of all regular files in the storage root, including
// files unrelated to this tool. Subdirectories and in-flight temp files are
// skipped.
func (s *FileSystemStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// ValidateSetup verifies that the storage root is an accessible directory.
func (s *FileSystemStorage) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("storage root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root is not a directory: %s", s.root)
	}
	return nil
}

// Compile-time check that FileSystemStorage implements snap.Storage interface
var _ snap.Storage = (*FileSystemStorage)(nil)
