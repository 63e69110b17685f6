package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	magickBinary = "magick"

	// magickFuzz is how far from white a pixel may be and still be keyed.
	magickFuzz = "20%"
)

// Magick drives the ImageMagick 7 "magick" binary.
type Magick struct {
	runner ProcessRunner
	binary string
}

// NewMagick creates a Magick rasterizer running commands through runner.
func NewMagick(runner ProcessRunner) *Magick {
	return &Magick{runner: runner, binary: magickBinary}
}

// Name returns "magick".
func (m *Magick) Name() string {
	return string(KindMagick)
}

// Args builds the magick argument vector for one variant. The ">" geometry
// flag only shrinks, matching the builtin rasterizer.
func (m *Magick) Args(input, output string, size int) []string {
	dim := fmt.Sprintf("%dx%d", size, size)
	return []string{
		input,
		"-fuzz", magickFuzz,
		"-transparent", "white",
		"-background", "none",
		"-resize", dim + ">",
		"-gravity", "center",
		"-extent", dim,
		output,
	}
}

// ResizeAndKey runs magick for one size. A non-zero exit is reported as
// ErrExternalTool carrying magick's stderr.
func (m *Magick) ResizeAndKey(ctx context.Context, input, output string, size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid size %d", size)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil { // #nosec G301 - Asset directories need standard permissions
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	_, stderr, err := m.runner.Run(ctx, m.binary, m.Args(input, output, size), nil)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			return fmt.Errorf("%w: %s: %w", ErrExternalTool, filepath.Base(input), err)
		}
		return fmt.Errorf("%w: %s: %w: %s", ErrExternalTool, filepath.Base(input), err, msg)
	}
	return nil
}

// CheckAvailable verifies that magick is on PATH and runs.
func (m *Magick) CheckAvailable(ctx context.Context) error {
	if _, err := m.runner.LookPath(m.binary); err != nil {
		return fmt.Errorf("%w: %s not found on PATH", ErrToolMissing, m.binary)
	}
	if _, _, err := m.runner.Run(ctx, m.binary, []string{"--version"}, nil); err != nil {
		return fmt.Errorf("%w: %s --version failed: %w", ErrToolMissing, m.binary, err)
	}
	return nil
}

// InstallHint returns platform guidance for installing ImageMagick.
func InstallHint() string {
	return `ImageMagick 7 is required for the magick rasterizer.
  macOS:          brew install imagemagick
  Debian/Ubuntu:  sudo apt install imagemagick
  Or rerun with --rasterizer builtin to use the in-process pipeline.`
}
