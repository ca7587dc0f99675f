package assets

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.png *.tmj *.tsj scripts
var assetsFS embed.FS

// Embedded returns the assets built into the binary.
func Embedded() fs.FS {
	return assetsFS
}

// FS serves files from an optional directory on disk, falling back to the
// embedded assets for anything the directory does not have.
type FS struct {
	dir      string
	override fs.FS
}

// Open returns an asset file system rooted at dir. An empty dir serves the
// embedded assets only.
func Open(dir string) *FS {
	a := &FS{dir: dir}
	if dir != "" {
		a.override = os.DirFS(dir)
	}
	return a
}

func (a *FS) Open(name string) (fs.File, error) {
	name = Clean(name)
	if a.override != nil {
		f, err := a.override.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return assetsFS.Open(name)
}

// Dir returns the override directory, or "".
func (a *FS) Dir() string {
	return a.dir
}

// OSPath returns the on-disk path of name inside the override directory,
// or "" when assets are embedded only.
func (a *FS) OSPath(name string) string {
	if a.dir == "" {
		return ""
	}
	return filepath.Join(a.dir, filepath.FromSlash(Clean(name)))
}

// Clean turns a path into an fs.FS name relative to the assets root.
func Clean(path string) string {
	if path == "" {
		return "."
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "assets/")
}
