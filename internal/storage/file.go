package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const docExt = ".json"

// FileStore keeps one JSON file per document under <dir>/<collection>/<id>.json.
type FileStore struct {
	dir string
}

// DefaultDataDir returns the default EduRPG data location.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".edurpg"), nil
}

func OpenFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	for _, c := range []string{Players, Guilds, Questions} {
		if err := os.MkdirAll(filepath.Join(dir, c), 0o755); err != nil {
			return nil, fmt.Errorf("file store init: %w", err)
		}
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Collection(name string) Collection {
	return &fileCollection{dir: filepath.Join(s.dir, name)}
}

func (s *FileStore) Close() error { return nil }

type fileCollection struct {
	dir string
}

func (c *fileCollection) path(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return filepath.Join(c.dir, id+docExt), nil
}

func (c *fileCollection) Put(ctx context.Context, id string, doc []byte) error {
	p, err := c.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("file put: %w", err)
	}
	// temp file + rename keeps the document whole
	tmp, err := os.CreateTemp(c.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("file put: %w", err)
	}
	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("file put: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("file put: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("file put: %w", err)
	}
	return nil
}

func (c *fileCollection) Get(ctx context.Context, id string) ([]byte, error) {
	p, err := c.path(id)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file get: %w", err)
	}
	return b, nil
}

func (c *fileCollection) Delete(ctx context.Context, id string) error {
	p, err := c.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file delete: %w", err)
	}
	return nil
}

func (c *fileCollection) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file list: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, docExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, docExt))
	}
	sort.Strings(ids)
	return ids, nil
}
