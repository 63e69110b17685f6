// Package image provides utilities for loading, scanning and writing images.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format
)

// ErrNotFound is returned when an image file does not exist.
var ErrNotFound = errors.New("image file not found")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load opens and decodes the image at path. JPEG, PNG, GIF and WebP are
// recognised by content, not by extension.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	file, err := os.Open(path) // #nosec G304 - Asset paths come from the project tree
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s (format: %q): %w", path, format, err)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image in any registered format.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectory returns the image files directly inside dirPath whose
// extension passes match, sorted by name. It does not recurse into
// subdirectories, but follows symlinks. A missing directory yields
// an error wrapping os.ErrNotExist.
func ScanDirectory(dirPath string, match func(path string) bool) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		if match(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	sort.Strings(imageFiles)
	return imageFiles, nil
}

// ScanDirectoryForImages returns every supported image file in dirPath.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	return ScanDirectory(dirPath, IsImageFile)
}

// IsPNG reports whether path has a .png extension.
func IsPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}
