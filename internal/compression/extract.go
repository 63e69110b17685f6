package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/noisebox/artforge/internal/security"
)

// MaxEntrySize caps the decompressed size of a single bundle entry.
const MaxEntrySize = 100 * 1024 * 1024

// entryFunc is called for each regular file in an archive.
type entryFunc func(name string, r io.Reader) error

// List returns the entry names of the bundle at path, in archive order.
func List(path string) ([]string, error) {
	var names []string
	err := walk(path, func(name string, _ io.Reader) error {
		names = append(names, name)
		return nil
	})
	return names, err
}

// Extract unpacks the bundle at path under destDir and returns the written
// files. Entries that would escape destDir are rejected.
func Extract(path, destDir string) ([]string, error) {
	var written []string
	err := walk(path, func(name string, r io.Reader) error {
		if err := security.ValidateArchivePath(name, destDir); err != nil {
			return err
		}

		target := filepath.Join(destDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil { // #nosec G301 - Asset directories need standard permissions
			return fmt.Errorf("failed to create directory for %s: %w", name, err)
		}

		out, err := os.Create(target) // #nosec G304 - target validated against destDir
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}
		_, copyErr := io.Copy(out, security.NewLimitedReader(r, MaxEntrySize))
		closeErr := out.Close()
		if copyErr != nil {
			return fmt.Errorf("failed to extract %s: %w", name, copyErr)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close %s: %w", target, closeErr)
		}

		written = append(written, target)
		return nil
	})
	return written, err
}

func walk(path string, fn entryFunc) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path) // #nosec G304 - Bundle path is supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to read bundle: %w", err)
	}

	switch format {
	case FormatTarXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create xz reader: %w", err)
		}
		return walkTar(xzr, fn)
	case FormatTarGz:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		return walkTar(gzr, fn)
	default:
		return walkZip(data, fn)
	}
}

func walkTar(r io.Reader, fn entryFunc) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if err := fn(header.Name, tr); err != nil {
			return err
		}
	}
}

func walkZip(data []byte, fn entryFunc) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to open zip archive: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		err = fn(f.Name, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
