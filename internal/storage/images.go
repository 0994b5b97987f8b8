// Package storage keeps uploaded element images on the local filesystem,
// the way the admin panel's multipart uploads land on disk.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// ImageStore writes uploads under a base directory and removes stale files
// best-effort. Removal never blocks or fails a database update; each outcome
// is logged and counted so operators can see leaked files.
type ImageStore struct {
	dir    string
	logger *slog.Logger

	removed      atomic.Int64
	removeFailed atomic.Int64
}

func NewImageStore(dir string, logger *slog.Logger) (*ImageStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir, logger: logger}, nil
}

// Save stores the upload under a random name, keeping the original extension,
// and returns the path to persist on the question row.
func (s *ImageStore) Save(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	stored := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return stored, nil
}

// Open reads back a stored image, for serving.
func (s *ImageStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(path)))
}

// Remove deletes a stored file best-effort. Placeholder paths (anything
// outside the upload dir) are ignored.
func (s *ImageStore) Remove(path string) {
	if path == "" || strings.Contains(path, "/") {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, path)); err != nil {
		s.removeFailed.Add(1)
		s.logger.Warn("stale image not removed", "path", path, "err", err)
		return
	}
	s.removed.Add(1)
	s.logger.Debug("stale image removed", "path", path)
}

// Counters reports how many removals succeeded and failed since start.
func (s *ImageStore) Counters() (removed, failed int64) {
	return s.removed.Load(), s.removeFailed.Load()
}
