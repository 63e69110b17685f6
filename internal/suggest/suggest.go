// Package suggest proposes a chroma-key background and threshold for a
// new photo by inspecting its border.
package suggest

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/noisebox/artforge/internal/assets"
)

const (
	// MinThreshold and MaxThreshold bound suggested thresholds.
	MinThreshold = 10
	MaxThreshold = 100

	// thresholdMargin is added on top of the measured border spread.
	thresholdMargin = 5

	// coveragePercentile is the share of border pixels the suggested
	// threshold aims to key out.
	coveragePercentile = 0.95
)

// Suggestion is a proposed key for one photo.
type Suggestion struct {
	Background assets.RGB
	Threshold  int
	// Coverage is the fraction of border pixels keyed at Threshold.
	Coverage float64
	// Spread is the mean CIELAB distance of border pixels from Background.
	Spread float64
}

// BorderWidth returns the sampling band width for an image of the given
// bounds: one twentieth of the shorter side, at least one pixel.
func BorderWidth(b image.Rectangle) int {
	return max(1, min(b.Dx(), b.Dy())/20)
}

// BorderPixels returns the opaque pixels within width of the image edge.
func BorderPixels(img image.Image, width int) []color.NRGBA {
	b := img.Bounds()
	var pixels []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			inBand := x < b.Min.X+width || x >= b.Max.X-width || y < b.Min.Y+width || y >= b.Max.Y-width
			if !inBand {
				continue
			}
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			pixels = append(pixels, c)
		}
	}
	return pixels
}

// Suggest samples img's border and proposes a background and threshold.
func Suggest(img image.Image) (Suggestion, error) {
	b := img.Bounds()
	if b.Empty() {
		return Suggestion{}, errors.New("image is empty")
	}

	pixels := BorderPixels(img, BorderWidth(b))
	if len(pixels) == 0 {
		return Suggestion{}, errors.New("image border is fully transparent")
	}

	bg := dominantBorderColour(pixels)

	distances := make([]int, len(pixels))
	key, _ := colorful.MakeColor(color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	var spread float64
	for i, p := range pixels {
		distances[i] = bg.Distance(p.R, p.G, p.B)
		c, _ := colorful.MakeColor(color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		spread += key.DistanceLab(c)
	}
	spread /= float64(len(pixels))

	sort.Ints(distances)
	idx := int(math.Ceil(coveragePercentile*float64(len(distances)))) - 1
	idx = max(0, min(idx, len(distances)-1))
	perChannel := int(math.Ceil(float64(distances[idx]) / 3))
	threshold := max(MinThreshold, min(MaxThreshold, perChannel+thresholdMargin))

	keyed := 0
	for _, d := range distances {
		if d < threshold*3 {
			keyed++
		}
	}

	return Suggestion{
		Background: bg,
		Threshold:  threshold,
		Coverage:   float64(keyed) / float64(len(distances)),
		Spread:     spread,
	}, nil
}

// dominantBorderColour packs the border pixels into a square image and asks
// dominantcolor for its most prominent colour.
func dominantBorderColour(pixels []color.NRGBA) assets.RGB {
	side := int(math.Ceil(math.Sqrt(float64(len(pixels)))))
	packed := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		packed.SetNRGBA(i%side, i/side, pixels[i%len(pixels)])
	}

	found := dominantcolor.FindWeight(packed, 4)
	if len(found) == 0 {
		return meanColour(pixels)
	}
	best := found[0]
	for _, c := range found[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	return assets.FromColor(best.RGBA)
}

func meanColour(pixels []color.NRGBA) assets.RGB {
	var r, g, b int
	for _, p := range pixels {
		r += int(p.R)
		g += int(p.G)
		b += int(p.B)
	}
	n := len(pixels)
	return assets.RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

// OutputName derives a snake_case output name from a photo's file name.
func OutputName(sourceFile string) string {
	stem := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(stem) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Row formats s as an AssetSpec literal ready to paste into the priority
// table.
func Row(sourceFile string, category assets.Category, s Suggestion) string {
	return fmt.Sprintf("{%q, %q, Category%s, RGB{%d, %d, %d}, %d},",
		filepath.Base(sourceFile),
		OutputName(sourceFile),
		categoryIdent(category),
		s.Background.R, s.Background.G, s.Background.B,
		s.Threshold,
	)
}

func categoryIdent(c assets.Category) string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
