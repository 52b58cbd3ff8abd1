package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sprites.yaml
var assetsFS embed.FS

// SpriteDef describes how a sprite ref is drawn. File is relative to the
// assets directory; Color names the placeholder fill used when File is
// missing or fails to decode.
type SpriteDef struct {
	File  string `yaml:"file"`
	Color string `yaml:"color"`
}

// LoadManifest returns the embedded sprite manifest keyed by sprite ref.
func LoadManifest() (map[string]SpriteDef, error) {
	b, err := assetsFS.ReadFile("sprites.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	var defs map[string]SpriteDef
	if err := yaml.Unmarshal(b, &defs); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest: %w", err)
	}
	return defs, nil
}

// LoadImage decodes an image from the assets directory on disk.
func LoadImage(path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty image path")
	}
	tried := []string{filepath.Join("assets", filepath.FromSlash(clean)), filepath.FromSlash(clean)}
	var lastErr error
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("assets: decode %q: %w", p, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("assets: load %q: %w", path, lastErr)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
