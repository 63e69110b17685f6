// Package compression packs UI-ready art into distributable bundles and
// unpacks them into a plugin's resource directory.
package compression

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// Format is a bundle archive format.
type Format string

const (
	FormatTarXz Format = "tar.xz"
	FormatTarGz Format = "tar.gz"
	FormatZip   Format = "zip"
)

// FormatFromPath infers the format from an archive's file name.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	default:
		return "", fmt.Errorf("unsupported bundle format for %s (use .tar.xz, .tar.gz or .zip)", filepath.Base(path))
	}
}

// epoch is stamped on every entry so identical trees produce identical bundles.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// CollectFiles returns the regular files under root as slash-separated
// paths relative to root, in lexical order.
func CollectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// Create archives every file under srcDir into dest and returns the
// archived entry names.
func Create(srcDir, dest string, format Format) ([]string, error) {
	files, err := CollectFiles(srcDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to bundle under %s", srcDir)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { // #nosec G301 - Bundle directory needs standard permissions
		return nil, fmt.Errorf("failed to create bundle directory: %w", err)
	}

	out, err := os.Create(dest) // #nosec G304 - Bundle path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to create bundle: %w", err)
	}

	writeErr := writeArchive(out, srcDir, files, format)
	closeErr := out.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(dest)
		if writeErr != nil {
			return nil, writeErr
		}
		return nil, fmt.Errorf("failed to close bundle: %w", closeErr)
	}

	return files, nil
}

func writeArchive(w io.Writer, srcDir string, files []string, format Format) error {
	switch format {
	case FormatTarXz:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		if err := writeTar(xzw, srcDir, files); err != nil {
			return err
		}
		if err := xzw.Close(); err != nil {
			return fmt.Errorf("failed to finish xz stream: %w", err)
		}
		return nil
	case FormatTarGz:
		gzw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return fmt.Errorf("failed to create gzip writer: %w", err)
		}
		if err := writeTar(gzw, srcDir, files); err != nil {
			return err
		}
		if err := gzw.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
		return nil
	case FormatZip:
		return writeZip(w, srcDir, files)
	default:
		return fmt.Errorf("unsupported bundle format: %s", format)
	}
}

func writeTar(w io.Writer, srcDir string, files []string) error {
	tw := tar.NewWriter(w)
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(name))) // #nosec G304 - Path comes from walking srcDir
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		header := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: epoch,
			Format:  tar.FormatPAX,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish tar archive: %w", err)
	}
	return nil
}

func writeZip(w io.Writer, srcDir string, files []string) error {
	zw := zip.NewWriter(w)
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(name))) // #nosec G304 - Path comes from walking srcDir
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: epoch,
		}
		header.SetMode(0o644)
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish zip archive: %w", err)
	}
	return nil
}
