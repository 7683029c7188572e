package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PhotoStore persists installer photos on disk, one file per project.
type PhotoStore struct {
	dir string
}

func NewPhotoStore(dir string) *PhotoStore {
	return &PhotoStore{dir: dir}
}

// Save writes a photo for the given project and returns its path. The
// extension is taken from the uploaded filename; writes go through a temp
// file and rename so a failed upload never leaves a partial photo.
func (p *PhotoStore) Save(projectID int64, filename string, r io.Reader) (string, error) {
	if projectID <= 0 {
		return "", fmt.Errorf("invalid project id")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(p.dir, fmt.Sprintf("project_%d%s", projectID, ext))
	tmp := dest + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Remove deletes a project's photo if one exists.
func (p *PhotoStore) Remove(path string) error {
	if path == "" || filepath.Dir(path) != filepath.Clean(p.dir) {
		return fmt.Errorf("invalid photo path")
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
