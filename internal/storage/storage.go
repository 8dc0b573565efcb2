// Package storage is the image store: a directory of uploaded photo blobs
// served read-only under a public URL prefix.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix the router serves the upload directory under.
const PublicPrefix = "/uploads"

type Store struct {
	dir string
}

// New ensures dir exists and returns a store writing into it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Put writes data under a freshly generated name that keeps the original
// file's extension, and returns the public URL of the stored file. Names are
// uuid-v4 based so concurrent uploads never collide.
func (s *Store) Put(originalName string, data []byte) (string, error) {
	name := uuid.NewString() + path.Ext(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return PublicPrefix + "/" + name, nil
}

// Remove deletes the file behind a URL previously returned by Put. Used for
// best-effort cleanup when the surrounding transaction rolls back.
func (s *Store) Remove(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return fmt.Errorf("refusing to remove %q", url)
	}
	return os.Remove(filepath.Join(s.dir, name))
}
