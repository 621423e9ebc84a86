package drivers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFSDriver reads endpoint files from a directory on local disk
type LocalFSDriver struct {
	BaseDir string
}

// NewLocalFSDriver creates a new LocalFSDriver rooted at baseDir.
func NewLocalFSDriver(baseDir string) (*LocalFSDriver, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat base directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path %s is not a directory", baseDir)
	}
	return &LocalFSDriver{BaseDir: baseDir}, nil
}

func (d *LocalFSDriver) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open endpoints file: %w", err)
	}
	return f, nil
}

// resolve joins key onto BaseDir and rejects keys that escape it.
func (d *LocalFSDriver) resolve(key string) (string, error) {
	if filepath.IsAbs(key) {
		return key, nil
	}
	fullPath := filepath.Join(d.BaseDir, key)
	rel, err := filepath.Rel(d.BaseDir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes base directory", key)
	}
	return fullPath, nil
}
