package assets

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit colour used as a chroma-key background.
type RGB struct {
	R, G, B uint8
}

// White is the key colour the batch processor removes.
var White = RGB{R: 255, G: 255, B: 255}

// ParseRGB parses a "#rrggbb" hex string.
func ParseRGB(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// FromColor converts any colour to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// String returns the colour as an "(r, g, b)" triple.
func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Distance returns the sum of absolute per-channel differences between c and
// the colour (r, g, b).
func (c RGB) Distance(r, g, b uint8) int {
	return absDiff(r, c.R) + absDiff(g, c.G) + absDiff(b, c.B)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
