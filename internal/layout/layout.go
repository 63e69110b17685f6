// Package layout maps asset names onto the art directory tree.
//
//	art/original/{category}/...           source photos and generated images
//	art/extracted/{category}/{name}_raw.png
//	art/ui-ready/{category}/{name}_{size}.png
//	art/catalog/ui_elements.json
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/noisebox/artforge/internal/assets"
)

// Layout resolves paths inside a project's art tree.
type Layout struct {
	root string
}

// New returns a Layout rooted at projectRoot.
func New(projectRoot string) Layout {
	return Layout{root: projectRoot}
}

// Root returns the project root.
func (l Layout) Root() string {
	return l.root
}

// ArtDir returns the art directory.
func (l Layout) ArtDir() string {
	return filepath.Join(l.root, "art")
}

// OriginalDir returns the directory holding source images for a category.
// An empty category returns the originals root.
func (l Layout) OriginalDir(c assets.Category) string {
	return filepath.Join(l.ArtDir(), "original", string(c))
}

// ExtractedDir returns the raw keyed output directory for a category.
func (l Layout) ExtractedDir(c assets.Category) string {
	return filepath.Join(l.ArtDir(), "extracted", string(c))
}

// UIReadyDir returns the sized variant directory for a category.
// An empty category returns the ui-ready root.
func (l Layout) UIReadyDir(c assets.Category) string {
	return filepath.Join(l.ArtDir(), "ui-ready", string(c))
}

// SourcePath returns the path of a priority asset's source photo.
func (l Layout) SourcePath(spec assets.AssetSpec) string {
	return filepath.Join(l.OriginalDir(""), spec.SourceFile)
}

// RawPath returns where an asset's full-resolution keyed image is written.
func (l Layout) RawPath(c assets.Category, name string) string {
	return filepath.Join(l.ExtractedDir(c), name+"_raw.png")
}

// VariantPath returns where an asset's size x size variant is written.
func (l Layout) VariantPath(c assets.Category, name string, size int) string {
	return filepath.Join(l.UIReadyDir(c), fmt.Sprintf("%s_%d.png", name, size))
}

// GeneratedPath returns where a generated source image for a variant is saved.
func (l Layout) GeneratedPath(c assets.Category, variant string, size int) string {
	return filepath.Join(l.OriginalDir(c), fmt.Sprintf("generated_%s_%d.png", variant, size))
}

// CatalogPath returns the path of the JSON inventory.
func (l Layout) CatalogPath() string {
	return filepath.Join(l.ArtDir(), "catalog", "ui_elements.json")
}

// EnsureOutputDirs creates the extracted and ui-ready directories for the
// given categories. Existing directories are left untouched.
func (l Layout) EnsureOutputDirs(categories []assets.Category) error {
	if err := os.MkdirAll(l.ExtractedDir(""), 0o755); err != nil { // #nosec G301 - Asset directories need standard permissions
		return fmt.Errorf("failed to create extracted directory: %w", err)
	}
	for _, c := range categories {
		for _, dir := range []string{l.ExtractedDir(c), l.UIReadyDir(c)} {
			if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Asset directories need standard permissions
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
	}
	return nil
}
