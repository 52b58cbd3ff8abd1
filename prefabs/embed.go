package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// DefaultDir is the on-disk directory whose files override the embedded specs.
const DefaultDir = "prefabs"

// Load reads a spec from dir when present there, falling back to the embedded
// copy. An empty dir means DefaultDir.
func Load(dir, name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(dir, clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(dir, clean string) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, filepath.FromSlash(clean))
}
