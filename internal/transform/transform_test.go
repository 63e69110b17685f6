package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/noisebox/artforge/internal/assets"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRemoveBackgroundThreshold(t *testing.T) {
	bg := assets.RGB{R: 10, G: 20, B: 30}
	threshold := 30 // limit 90

	tests := []struct {
		name        string
		pixel       color.NRGBA
		transparent bool
	}{
		{"exact background", color.NRGBA{10, 20, 30, 255}, true},
		{"distance 89", color.NRGBA{99, 20, 30, 255}, true},
		{"distance exactly 90 is kept", color.NRGBA{100, 20, 30, 255}, false},
		{"distance 90 split across channels", color.NRGBA{40, 50, 60, 255}, false},
		{"distance 91", color.NRGBA{101, 20, 30, 255}, false},
		{"below background", color.NRGBA{0, 0, 0, 255}, true},
		{"far away", color.NRGBA{250, 250, 250, 255}, false},
		{"translucent near pixel still keyed", color.NRGBA{12, 22, 32, 40}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solid(1, 1, tt.pixel)
			got := RemoveBackground(src, bg, threshold).NRGBAAt(0, 0)

			if tt.transparent {
				if got != (color.NRGBA{}) {
					t.Errorf("Expected fully transparent pixel, got %v", got)
				}
				return
			}
			if got != tt.pixel {
				t.Errorf("Expected pixel unchanged %v, got %v", tt.pixel, got)
			}
		})
	}
}

func TestRemoveBackgroundPreservesAlphaAndSource(t *testing.T) {
	src := solid(4, 4, color.NRGBA{200, 100, 50, 77})
	src.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	before := append([]uint8(nil), src.Pix...)

	out := RemoveBackground(src, assets.White, 10)

	if out.NRGBAAt(0, 0) != (color.NRGBA{200, 100, 50, 77}) {
		t.Errorf("Expected original alpha preserved, got %v", out.NRGBAAt(0, 0))
	}
	if out.NRGBAAt(1, 1).A != 0 {
		t.Errorf("Expected white pixel keyed out, got %v", out.NRGBAAt(1, 1))
	}
	if string(before) != string(src.Pix) {
		t.Error("RemoveBackground modified its input")
	}
	if &out.Pix[0] == &src.Pix[0] {
		t.Error("RemoveBackground returned the input buffer")
	}
}

func TestRemoveBackgroundUpgradesToAlpha(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	for y := 5; y < 7; y++ {
		for x := 5; x < 8; x++ {
			src.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	src.Set(6, 6, color.RGBA{0, 0, 0, 255})

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	out := RemoveBackground(gray, assets.RGB{}, 1)
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0 {
			t.Fatal("Expected black gray image to be fully keyed")
		}
	}

	keyed := RemoveBackground(src, assets.White, 5)
	if keyed.Bounds().Dx() != 3 || keyed.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 output, got %v", keyed.Bounds())
	}
	alphaOnly := 0
	for i := 3; i < len(keyed.Pix); i += 4 {
		if keyed.Pix[i] != 0 && keyed.Pix[i] != 255 {
			t.Errorf("Unexpected partial alpha %d", keyed.Pix[i])
		}
		if keyed.Pix[i] == 255 {
			alphaOnly++
		}
	}
	if alphaOnly != 1 {
		t.Errorf("Expected 1 opaque pixel, got %d", alphaOnly)
	}
}

func TestNormalizeDimensions(t *testing.T) {
	sizes := []int{64, 128, 256}
	inputs := []image.Point{
		{300, 300},
		{1000, 10},
		{10, 1000},
		{640, 480},
		{20, 12},
		{1, 1},
		{64, 64},
		{5000, 1},
	}

	for _, size := range sizes {
		for _, in := range inputs {
			out := Normalize(solid(in.X, in.Y, color.NRGBA{1, 2, 3, 255}), size)
			if out.Bounds().Dx() != size || out.Bounds().Dy() != size {
				t.Errorf("Normalize(%v, %d) gave %v", in, size, out.Bounds())
			}
		}
	}
}

func TestNormalizeNeverUpscales(t *testing.T) {
	src := solid(10, 6, color.NRGBA{255, 0, 0, 255})
	out := Normalize(src, 64)

	// offset = floor((64-10)/2), floor((64-6)/2)
	off := image.Pt(27, 29)
	opaque := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			p := out.NRGBAAt(x, y)
			inside := x >= off.X && x < off.X+10 && y >= off.Y && y < off.Y+6
			if inside {
				if p != (color.NRGBA{255, 0, 0, 255}) {
					t.Fatalf("Expected source pixel at (%d,%d), got %v", x, y, p)
				}
				opaque++
			} else if p.A != 0 {
				t.Fatalf("Expected transparent padding at (%d,%d), got %v", x, y, p)
			}
		}
	}
	if opaque != 60 {
		t.Errorf("Expected 60 source pixels, got %d", opaque)
	}
}

func TestNormalizeDownscalesLargerSide(t *testing.T) {
	src := solid(400, 100, color.NRGBA{0, 0, 255, 255})
	out := Normalize(src, 128)

	// 400x100 fits as 128x32, centred at y = (128-32)/2 = 48.
	if out.NRGBAAt(64, 47).A != 0 {
		t.Error("Expected transparent row above the image")
	}
	if out.NRGBAAt(64, 48).A == 0 {
		t.Error("Expected first image row at y=48")
	}
	if out.NRGBAAt(64, 79).A == 0 {
		t.Error("Expected last image row at y=79")
	}
	if out.NRGBAAt(64, 80).A != 0 {
		t.Error("Expected transparent row below the image")
	}
	if out.NRGBAAt(0, 64).A == 0 || out.NRGBAAt(127, 64).A == 0 {
		t.Error("Expected image to span the full width")
	}
}

func TestFitSizeRoundsShortSide(t *testing.T) {
	tests := []struct {
		src  image.Point
		size int
		want image.Point
	}{
		{image.Pt(96, 64), 64, image.Pt(64, 43)},
		{image.Pt(64, 96), 64, image.Pt(43, 64)},
		{image.Pt(400, 100), 128, image.Pt(128, 32)},
		{image.Pt(300, 300), 64, image.Pt(64, 64)},
		{image.Pt(5000, 1), 64, image.Pt(64, 1)},
		{image.Pt(10, 6), 64, image.Pt(10, 6)},
		{image.Pt(64, 20), 64, image.Pt(64, 20)},
	}
	for _, tt := range tests {
		if got := FitSize(tt.src, tt.size); got != tt.want {
			t.Errorf("FitSize(%v, %d) = %v, want %v", tt.src, tt.size, got, tt.want)
		}
	}
}

func TestNormalizeRoundedPlacement(t *testing.T) {
	out := Normalize(solid(96, 64, color.NRGBA{0, 255, 0, 255}), 64)

	// 96x64 fits as 64x43, centred at y = (64-43)/2 = 10.
	if out.NRGBAAt(32, 9).A != 0 {
		t.Error("Expected transparent row above the image")
	}
	if out.NRGBAAt(32, 10).A == 0 || out.NRGBAAt(32, 52).A == 0 {
		t.Error("Expected image rows 10 through 52")
	}
	if out.NRGBAAt(32, 53).A != 0 {
		t.Error("Expected transparent row below the image")
	}
}

func TestCenterOffsetFloors(t *testing.T) {
	tests := []struct {
		size int
		dim  image.Point
		want image.Point
	}{
		{64, image.Pt(64, 64), image.Pt(0, 0)},
		{64, image.Pt(63, 61), image.Pt(0, 1)},
		{128, image.Pt(1, 2), image.Pt(63, 63)},
		{256, image.Pt(255, 100), image.Pt(0, 78)},
	}
	for _, tt := range tests {
		if got := CenterOffset(tt.size, tt.dim); got != tt.want {
			t.Errorf("CenterOffset(%d, %v) = %v, want %v", tt.size, tt.dim, got, tt.want)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 333, 217))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	a := Normalize(src, 64)
	b := Normalize(src, 64)
	if string(a.Pix) != string(b.Pix) {
		t.Error("Expected identical output for identical input")
	}
}

func TestNormalizeInvalidSize(t *testing.T) {
	out := Normalize(solid(4, 4, color.NRGBA{A: 255}), 0)
	if !out.Bounds().Empty() {
		t.Errorf("Expected empty image for size 0, got %v", out.Bounds())
	}
}
