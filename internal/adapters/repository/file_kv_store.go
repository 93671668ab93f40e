package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

var _ domain.KeyValueStore = (*FileKVStore)(nil)

var ErrEmptyDataDir = errors.New("data directory cannot be empty")

const (
	fileKVDirPerm  = 0o700
	fileKVFilePerm = 0o600
	fileKVExt      = ".json"
)

// FileKVStore keeps one file per key under a data directory. Writes are
// atomic: the value goes to a temp file that is renamed over the old one.
type FileKVStore struct {
	root string

	mu sync.Mutex
}

func NewFileKVStore(dir string) (*FileKVStore, error) {
	if dir == "" {
		return nil, ErrEmptyDataDir
	}
	if err := os.MkdirAll(dir, fileKVDirPerm); err != nil {
		return nil, fmt.Errorf("repository: create data dir failed: %w", err)
	}
	return &FileKVStore{root: dir}, nil
}

func (s *FileKVStore) path(key string) string {
	return filepath.Join(s.root, url.PathEscape(key)+fileKVExt)
}

func (s *FileKVStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("repository: read %q failed: %w", key, err)
	}
	return string(data), nil
}

func (s *FileKVStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.root, "kv-*.tmp")
	if err != nil {
		return fmt.Errorf("repository: create temp file failed: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("repository: write %q failed: %w", key, err)
	}
	if err := tmp.Chmod(fileKVFilePerm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("repository: chmod %q failed: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("repository: close %q failed: %w", key, err)
	}
	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("repository: replace %q failed: %w", key, err)
	}
	return nil
}

func (s *FileKVStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("repository: delete %q failed: %w", key, err)
	}
	return nil
}
