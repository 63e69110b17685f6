// Sample photo generator for trying the extractor without the real photos.
//
// Usage (from the repository root):
//
//	go run testdata/generate_sample_photos.go [project-root]
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/noisebox/artforge/internal/assets"
	"github.com/noisebox/artforge/internal/layout"
)

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	l := layout.New(root)

	for _, spec := range assets.PriorityAssets() {
		path := l.SourcePath(spec)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			panic(err)
		}

		f, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		// Quality 100 keeps JPEG noise inside every table threshold.
		if err := jpeg.Encode(f, samplePhoto(spec.Background), &jpeg.Options{Quality: 100}); err != nil {
			f.Close()
			panic(err)
		}
		f.Close()

		fmt.Println("Sample photo created:", path)
	}
}

// samplePhoto draws a brass square on a 400x300 backdrop of bg.
func samplePhoto(bg assets.RGB) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	backdrop := color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
	brass := color.RGBA{R: 181, G: 140, B: 60, A: 255}

	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			c := backdrop
			if x >= 120 && x < 280 && y >= 70 && y < 230 {
				c = brass
			}
			img.Set(x, y, c)
		}
	}
	return img
}
