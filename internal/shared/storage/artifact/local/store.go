package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/shared/storage/artifact"
)

// Store implements artifact.Store on one local directory.
type Store struct {
	baseDir string
}

// New creates a local artifact store rooted at baseDir, creating it if needed.
func New(baseDir string) (*Store, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve reports dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir reports dir: %w", err)
	}
	return &Store{baseDir: abs}, nil
}

// Dir returns the absolute store root.
func (s *Store) Dir() string {
	return s.baseDir
}

// Save writes data under name. The bytes land in a temp file first and are renamed
// into place, so readers see either the previous artifact or the complete new one.
func (s *Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := artifact.ValidateName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", artifact.ErrStorage, err)
	}

	fullPath, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	tmpPath := filepath.Join(s.baseDir, "."+name+"."+uuid.NewString()+".tmp")
	if err := writeFileSync(tmpPath, data); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: write %s: %v", artifact.ErrStorage, name, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: rename %s: %v", artifact.ErrStorage, name, err)
	}
	return name, nil
}

// Load reads the artifact stored under id.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if err := artifact.ValidateName(id); err != nil {
		return nil, fmt.Errorf("%w: %v", artifact.ErrNotFound, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", artifact.ErrStorage, err)
	}

	fullPath, err := s.resolve(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", artifact.ErrNotFound, err)
	}

	info, err := os.Lstat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, artifact.ErrNotFound
		}
		return nil, fmt.Errorf("%w: stat %s: %v", artifact.ErrStorage, id, err)
	}
	if !info.Mode().IsRegular() {
		return nil, artifact.ErrNotFound
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, artifact.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read %s: %v", artifact.ErrStorage, id, err)
	}
	return data, nil
}

// resolve maps a validated name to a path and re-checks that it stays under the root.
func (s *Store) resolve(name string) (string, error) {
	fullPath := filepath.Join(s.baseDir, name)
	rel, err := filepath.Rel(s.baseDir, fullPath)
	if err != nil || rel != name || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: outside store root", artifact.ErrInvalidName)
	}
	return fullPath, nil
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var _ artifact.Store = (*Store)(nil)
