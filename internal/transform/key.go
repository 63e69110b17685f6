// Package transform implements the pixel-level transforms of the asset
// pipeline: chroma-key background removal and square canvas normalization.
package transform

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/noisebox/artforge/internal/assets"
)

// RemoveBackground returns a copy of img in which every pixel whose colour
// lies within threshold*3 of bg (sum of absolute channel differences, strict
// less-than) is fully transparent black. All other pixels keep their colour
// and original alpha. img is never modified.
//
// The key is hard: no pixel gains partial transparency, so edges are not
// feathered.
func RemoveBackground(img image.Image, bg assets.RGB, threshold int) *image.NRGBA {
	out := imaging.Clone(img)
	limit := threshold * 3

	for y := 0; y < out.Rect.Dy(); y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+out.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if bg.Distance(row[i], row[i+1], row[i+2]) < limit {
				row[i], row[i+1], row[i+2], row[i+3] = 0, 0, 0, 0
			}
		}
	}

	return out
}
