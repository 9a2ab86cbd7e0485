package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

type fileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore хранит документы как <dir>/<name>.json. Каталог создаётся при необходимости.
func NewFileStore(fsys afero.Fs, dir string) (DocumentStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %q: %w", dir, err)
	}
	return &fileStore{fs: fsys, dir: dir}, nil
}

func (s *fileStore) filename(name string) string {
	return path.Join(s.dir, name+".json")
}

func (s *fileStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.filename(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read document %q: %w", name, err)
	}
	return data, nil
}

// Write пишет во временный файл рядом с документом и переименовывает его,
// поэтому читатель видит либо старую, либо новую версию.
func (s *fileStore) Write(_ context.Context, name string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write document %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %q: %w", name, err)
	}
	if err := s.fs.Rename(tmpName, s.filename(name)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace document %q: %w", name, err)
	}
	return nil
}
