package transform

import (
	"image"

	"github.com/disintegration/imaging"
)

// Normalize fits img into a transparent size x size canvas.
//
// Images larger than the canvas are downscaled with a Lanczos filter to
// FitSize. Images that already fit are never upscaled. The result is
// centred with the offset on each axis rounded down.
func Normalize(img image.Image, size int) *image.NRGBA {
	if size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	if img.Bounds().Empty() {
		return canvas
	}

	dim := FitSize(img.Bounds().Size(), size)
	var fitted *image.NRGBA
	if dim == img.Bounds().Size() {
		fitted = imaging.Clone(img)
	} else {
		fitted = imaging.Resize(img, dim.X, dim.Y, imaging.Lanczos)
	}
	return imaging.Paste(canvas, fitted, CenterOffset(size, dim))
}

// FitSize returns the dimensions of src scaled down so its larger side is
// size. The shorter side is rounded to the nearest pixel and never drops
// below 1. Dimensions that already fit are returned unchanged.
func FitSize(src image.Point, size int) image.Point {
	if src.X <= size && src.Y <= size {
		return src
	}
	scale := func(short, long int) int {
		return max(1, (2*short*size+long)/(2*long))
	}
	if src.X >= src.Y {
		return image.Pt(size, scale(src.Y, src.X))
	}
	return image.Pt(scale(src.X, src.Y), size)
}

// CenterOffset returns the top-left position that centres an image of the
// given dimensions on a size x size canvas.
func CenterOffset(size int, dim image.Point) image.Point {
	return image.Pt((size-dim.X)/2, (size-dim.Y)/2)
}
