package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes recordings below a directory served by the HTTP router.
type LocalStore struct {
	baseDir string
	now     func() time.Time
}

// NewLocalStore creates the base directory when it does not exist yet.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "datas/media"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir, now: time.Now}, nil
}

func (s *LocalStore) LocalDir() string {
	return s.baseDir
}

// Put streams body to a temporary file and renames it into place, so a
// failed upload never leaves a truncated recording behind.
func (s *LocalStore) Put(ctx context.Context, body io.Reader, size int64, obj Object) (string, error) {
	if err := checkUpload(ctx, size, obj); err != nil {
		return "", err
	}

	key := obj.Key(s.now())
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(body, size))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if written != size {
		return "", fmt.Errorf("write file: short upload (%d of %d bytes)", written, size)
	}

	if err := os.Rename(tmp.Name(), absPath); err != nil {
		return "", fmt.Errorf("move file: %w", err)
	}
	return key, nil
}

var _ MediaStore = (*LocalStore)(nil)
var _ LocalDirProvider = (*LocalStore)(nil)
