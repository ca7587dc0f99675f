package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a prefab file, preferring fsys (usually the asset directory)
// and falling back to the embedded defaults.
func Load(fsys fs.FS, name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if fsys != nil {
		data, err := fs.ReadFile(fsys, clean)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return PrefabsFS.ReadFile(path.Base(clean))
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	return path.Clean(s)
}
