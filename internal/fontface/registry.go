// Package fontface provides an explicit font registry for the image
// compositor. Fonts are registered during process startup instead of
// as an import-time side effect, so tests can run against a known set
// and the compositor stays free of hidden global state.
package fontface

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrNoFont is returned when a face is requested from an empty registry.
var ErrNoFont = errors.New("fontface: no fonts registered")

type faceKey struct {
	family string
	weight string
	style  string
}

// Registry maps font family, weight and style to parsed font data.
// It is populated once during startup and read-only afterwards, so it
// is safe for concurrent use without locking.
type Registry struct {
	fonts    map[faceKey]*sfnt.Font
	fallback *sfnt.Font
}

// NewRegistry creates a registry pre-populated with the embedded Go
// fonts, which also act as the fallback for unknown families. Custom
// fonts are layered on top via Register or LoadDir.
func NewRegistry() (*Registry, error) {
	r := &Registry{fonts: make(map[faceKey]*sfnt.Font)}

	embedded := []struct {
		weight, style string
		data          []byte
	}{
		{"normal", "normal", goregular.TTF},
		{"bold", "normal", gobold.TTF},
		{"normal", "italic", goitalic.TTF},
		{"bold", "italic", gobolditalic.TTF},
	}
	for _, e := range embedded {
		f, err := opentype.Parse(e.data)
		if err != nil {
			return nil, fmt.Errorf("fontface: parse embedded font: %w", err)
		}
		r.fonts[faceKey{"go", e.weight, e.style}] = f
		if e.weight == "normal" && e.style == "normal" {
			r.fallback = f
		}
	}
	return r, nil
}

// Register parses TTF/OTF data and indexes it by the family and
// subfamily recorded in the font's name table.
func (r *Registry) Register(data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("fontface: parse font: %w", err)
	}

	var buf sfnt.Buffer
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return fmt.Errorf("fontface: read font family: %w", err)
	}
	subfamily, _ := f.Name(&buf, sfnt.NameIDSubfamily)

	weight, style := "normal", "normal"
	lower := strings.ToLower(subfamily)
	if strings.Contains(lower, "bold") {
		weight = "bold"
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		style = "italic"
	}

	r.fonts[faceKey{strings.ToLower(family), weight, style}] = f
	return nil
}

// LoadDir registers every .ttf and .otf file found directly in dir.
// Files that fail to parse are reported through the returned error but
// do not stop the remaining files from loading.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("fontface: read font dir: %w", err)
	}

	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) // #nosec G304 - font dir is operator configuration
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fontface: read %s: %w", entry.Name(), err)
			}
			continue
		}
		if err := r.Register(data); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fontface: register %s: %w", entry.Name(), err)
			}
		}
	}
	return firstErr
}

// Face returns a font.Face for the requested family, weight and style
// at the given pixel size. Unknown families and unavailable variants
// degrade gracefully: first to the family's regular variant, then to
// the fallback font. A new face is created per call because font.Face
// instances are not safe for concurrent use.
func (r *Registry) Face(family, weight, style string, size float64) (font.Face, error) {
	f := r.lookup(strings.ToLower(family), weight, style)
	if f == nil {
		return nil, ErrNoFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontface: create face: %w", err)
	}
	return face, nil
}

func (r *Registry) lookup(family, weight, style string) *sfnt.Font {
	if f, ok := r.fonts[faceKey{family, weight, style}]; ok {
		return f
	}
	if f, ok := r.fonts[faceKey{family, "normal", "normal"}]; ok {
		return f
	}
	if f, ok := r.fonts[faceKey{"go", weight, style}]; ok {
		return f
	}
	return r.fallback
}
