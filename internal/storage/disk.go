package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
)

// DiskStorage keeps posters in a flat directory, created on demand.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) *DiskStorage {
	return &DiskStorage{dir: dir}
}

func (d *DiskStorage) Save(_ context.Context, name string, r io.Reader) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}

	// O_EXCL makes the existence check and the create one atomic step.
	f, err := os.OpenFile(d.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return autherror.ErrPosterAlreadyExists
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	return err
}

func (d *DiskStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, autherror.ErrPosterNotFound
		}
		return nil, err
	}
	return f, nil
}

func (d *DiskStorage) Remove(_ context.Context, name string) error {
	err := os.Remove(d.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (d *DiskStorage) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(d.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// path flattens the name so a crafted filename cannot escape the directory.
func (d *DiskStorage) path(name string) string {
	return filepath.Join(d.dir, filepath.Base(name))
}
