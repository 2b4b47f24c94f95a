package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore stages files on the local filesystem. It backs the
// pre-signed upload URLs in deployments without a cloud blob store and
// in tests.
type LocalStore struct {
	stagingDir string
}

// NewLocalStore creates the staging directory if needed.
func NewLocalStore(stagingDir string) (*LocalStore, error) {
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &LocalStore{stagingDir: stagingDir}, nil
}

// resolve maps a staging key into the staging directory, rejecting
// keys that would escape it.
func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid staging key %q", key)
	}
	return filepath.Join(s.stagingDir, clean), nil
}

func (s *LocalStore) SaveFile(key string, reader io.Reader) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create staging subdirectory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create staged file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return fmt.Errorf("write staged file: %w", err)
	}
	return nil
}

func (s *LocalStore) ReadFile(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalStore) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := s.resolve(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStore) DeleteFile(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete staged file: %w", err)
	}
	return nil
}

func (s *LocalStore) ListStale(ctx context.Context, cutoff time.Time) ([]string, error) {
	var stale []string
	err := filepath.WalkDir(s.stagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(cutoff) {
			rel, err := filepath.Rel(s.stagingDir, path)
			if err != nil {
				return err
			}
			stale = append(stale, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stale, nil
}
