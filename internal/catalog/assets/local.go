package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes objects under Dir for development setups where the
// API serves Dir itself at BaseURL.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*LocalUploader, error) {
	if dir == "" {
		return nil, errors.New("local upload dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: baseURL}, nil
}

func (u *LocalUploader) Dir() string { return u.dir }

func (u *LocalUploader) Upload(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(obj.Key, "..") {
		return "", fmt.Errorf("invalid object key %q", obj.Key)
	}
	dest := filepath.Join(u.dir, filepath.FromSlash(obj.Key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", obj.Key, err)
	}
	if _, err := io.Copy(f, obj.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write %s: %w", obj.Key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", obj.Key, err)
	}
	return joinURL(u.baseURL, obj.Key), nil
}
