// Package filesystem routes every file operation through a swappable afero backend,
// the OS in production and memory in tests.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs switches to the operating system.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteFile writes data to path, creating parent directories. The data is
// written to a sibling temp file first and renamed into place, so readers
// never see a partial file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := backend.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := backend.TempFile(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Close()
	} else {
		_ = tmp.Close()
	}

	if err == nil {
		err = backend.Chmod(tmp.Name(), perm)
	}
	if err == nil {
		err = backend.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = backend.Remove(tmp.Name())
	}
	return err
}
