package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultDir is the on-disk directory searched before the embedded levels.
const DefaultDir = "levels"

// Read returns the raw bytes of a level. name may be a basename ("1-1"), a
// file name ("1-1.json") or a path. Files on disk win over embedded copies.
func Read(dir, name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("levels: empty level name")
	}
	file := name
	if filepath.Ext(file) == "" {
		file += ".json"
	}
	if dir == "" {
		dir = DefaultDir
	}

	path := file
	if !filepath.IsAbs(file) && !strings.ContainsRune(filepath.ToSlash(file), '/') {
		path = filepath.Join(dir, file)
	}
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	data, err := LevelsFS.ReadFile(filepath.ToSlash(filepath.Base(file)))
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	return out
}
