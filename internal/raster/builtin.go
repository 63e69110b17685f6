package raster

import (
	"context"
	"fmt"

	"github.com/noisebox/artforge/internal/assets"
	imageio "github.com/noisebox/artforge/internal/image"
	"github.com/noisebox/artforge/internal/transform"
)

// BuiltinThreshold is the per-channel key threshold matching magick's 20%
// fuzz against white (20% of 255, rounded).
const BuiltinThreshold = 51

// Builtin rasterizes with the in-process transforms, keying out white.
type Builtin struct {
	loader    imageio.Loader
	key       assets.RGB
	threshold int
}

// NewBuiltin creates a Builtin rasterizer keyed on white.
func NewBuiltin() *Builtin {
	return &Builtin{
		loader:    imageio.NewFileLoader(),
		key:       assets.White,
		threshold: BuiltinThreshold,
	}
}

// Name returns "builtin".
func (b *Builtin) Name() string {
	return string(KindBuiltin)
}

// ResizeAndKey keys, normalizes and writes one variant.
func (b *Builtin) ResizeAndKey(ctx context.Context, input, output string, size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid size %d", size)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := b.loader.Load(input)
	if err != nil {
		return err
	}

	keyed := transform.RemoveBackground(img, b.key, b.threshold)
	if err := imageio.WritePNG(output, transform.Normalize(keyed, size)); err != nil {
		return err
	}
	return nil
}

// CheckAvailable always succeeds.
func (b *Builtin) CheckAvailable(context.Context) error {
	return nil
}
