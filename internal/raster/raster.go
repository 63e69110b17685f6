// Package raster resizes and chroma-keys source images into square UI
// variants, either through ImageMagick or in-process.
package raster

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrExternalTool marks a failed raster tool invocation.
	ErrExternalTool = errors.New("external raster tool failed")

	// ErrToolMissing is returned when the raster tool is not installed.
	ErrToolMissing = errors.New("raster tool not available")
)

// Rasterizer produces one keyed, padded size x size PNG from an input image.
type Rasterizer interface {
	// Name identifies the implementation in logs and flags.
	Name() string

	// ResizeAndKey keys the input's background, fits it into a transparent
	// size x size canvas and writes the PNG to output.
	ResizeAndKey(ctx context.Context, input, output string, size int) error

	// CheckAvailable verifies the rasterizer can run on this machine.
	CheckAvailable(ctx context.Context) error
}

// Kind selects a Rasterizer implementation.
type Kind string

const (
	KindMagick  Kind = "magick"
	KindBuiltin Kind = "builtin"
)

// New returns the rasterizer for kind.
func New(kind Kind) (Rasterizer, error) {
	switch kind {
	case KindMagick, "":
		return NewMagick(NewRealProcessRunner()), nil
	case KindBuiltin:
		return NewBuiltin(), nil
	default:
		return nil, fmt.Errorf("unknown rasterizer %q (valid: magick, builtin)", kind)
	}
}
