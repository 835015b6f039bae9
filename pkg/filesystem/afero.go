package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Default permissions for created entries
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// NewOS returns the real filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Create creates or truncates name for writing, creating parent directories
// as needed
func Create(fsys afero.Fs, name string) (afero.File, error) {
	if err := fsys.MkdirAll(filepath.Dir(name), DirPerm); err != nil {
		return nil, err
	}
	return fsys.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FilePerm)
}

// CopyFile copies src to dst, keeping the mode of src
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, dst, data, info.Mode().Perm())
}

// SafeName turns a backend entry name into a single path element
func SafeName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	switch name {
	case "", ".", "..":
		return "_"
	}
	return name
}
