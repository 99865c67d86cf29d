package preset

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/leapstack-labs/lintpreset/pkg/document"
)

//go:embed presets
var embeddedFS embed.FS

// EmbeddedSource is the source recorded for presets built into the binary.
const EmbeddedSource = "embedded"

// Default returns a new registry seeded with the embedded presets.
func Default() (*Registry, error) {
	r := NewRegistry()
	sub, err := fs.Sub(embeddedFS, "presets")
	if err != nil {
		return nil, err
	}
	if err := r.LoadFS(sub, EmbeddedSource); err != nil {
		return nil, fmt.Errorf("failed to load embedded presets: %w", err)
	}
	return r, nil
}

// LoadDir registers every document file below dir.
func (r *Registry) LoadDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to open preset directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("preset directory %s is not a directory", dir)
	}
	return r.LoadFS(os.DirFS(dir), dir)
}

// LoadFS registers every document file in fsys. A document without a name
// is registered under its path without the extension, e.g. "base/formatting".
func (r *Registry) LoadFS(fsys fs.FS, source string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !slices.Contains(document.Extensions, ext) {
			return nil
		}
		format, err := document.FormatFromPath(p)
		if err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		fileSource := path.Join(source, p)
		doc, err := document.Decode(format, fileSource, data)
		if err != nil {
			return fmt.Errorf("%s: %w", fileSource, err)
		}
		if doc.Name == "" {
			doc.Name = strings.TrimSuffix(p, path.Ext(p))
		}
		return r.Register(doc, fileSource)
	})
}
