// Package system abstracts the file system so the loader and CLI can run against in-memory trees in tests.
package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is the read side used to load fragment files.
// Names are OS paths, absolute or relative to the working directory; in-memory implementations
// such as fstest.MapFS use slash separated relative names.
type VirtualFS interface {
	fs.FS
}

// WritableVirtualFS can also write files, used when the resolved configuration is written to disk.
type WritableVirtualFS interface {
	VirtualFS
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// FileSystem is the operating system file system.
type FileSystem struct{}

var _ WritableVirtualFS = (*FileSystem)(nil)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// WriteFile writes data to name, creating parent directories as needed.
func (fs *FileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, perm)
}

func (fs *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadFile reads the named file from fsys.
func ReadFile(fsys VirtualFS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name)
}
