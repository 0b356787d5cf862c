package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStorage writes blobs into a flat upload directory, creating it on
// first use. Files under the directory are served statically at /media.
type DiskStorage struct {
	dir string
}

// NewDiskStorage creates a DiskStorage rooted at dir
func NewDiskStorage(dir string) *DiskStorage {
	return &DiskStorage{dir: dir}
}

// Dir returns the upload directory
func (s *DiskStorage) Dir() string {
	return s.dir
}

func (s *DiskStorage) Save(ctx context.Context, filename string, r io.Reader, size int64) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *DiskStorage) Remove(ctx context.Context, filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
