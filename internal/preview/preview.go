// Package preview draws images in a 24-bit colour terminal using upper
// half-block characters, two pixel rows per text row.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/nfnt/resize"
)

const halfBlock = "▀"

// Checkerboard shades used behind transparent pixels.
var (
	checkerLight = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	checkerDark  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// Options controls rendering.
type Options struct {
	// Width is the maximum number of terminal columns to use.
	Width int
	// CheckerSize is the checkerboard cell size in pixels.
	CheckerSize int
}

// Scale shrinks img to fit width columns, preserving aspect ratio. Images
// that already fit are returned unchanged.
func Scale(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Lanczos3)
}

// Render writes img to w as ANSI half blocks.
func Render(w io.Writer, img image.Image, opts Options) error {
	checker := opts.CheckerSize
	if checker <= 0 {
		checker = 4
	}

	img = Scale(img, opts.Width)
	b := img.Bounds()

	bw := bufio.NewWriter(w)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := Composite(img.At(x, y), x-b.Min.X, y-b.Min.Y, checker)
			bottom := color.NRGBA{A: 0xff}
			if y+1 < b.Max.Y {
				bottom = Composite(img.At(x, y+1), x-b.Min.X, y+1-b.Min.Y, checker)
			}
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, halfBlock)
		}
		bw.WriteString("\x1b[0m\n")
	}
	return bw.Flush()
}

// Composite blends c over the checkerboard cell at (x, y).
func Composite(c color.Color, x, y, cell int) color.NRGBA {
	bg := checkerLight
	if (x/cell+y/cell)%2 == 1 {
		bg = checkerDark
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch n.A {
	case 0xff:
		return n
	case 0:
		return bg
	}

	a := uint32(n.A)
	blend := func(fg, back uint8) uint8 {
		return uint8((uint32(fg)*a + uint32(back)*(0xff-a)) / 0xff)
	}
	return color.NRGBA{R: blend(n.R, bg.R), G: blend(n.G, bg.G), B: blend(n.B, bg.B), A: 0xff}
}
