// placeholder - Offline Placeholder Generator (artforge Generator Plugin)
//
// Renders a brass disc on a white background instead of calling a remote
// image API, so the --generate pipeline can be exercised without
// credentials. The disc's tint is derived from the prompt, so each catalog
// variant gets a distinct but repeatable image.
//
// Build:
//   go build -o artforge-placeholder ./contrib/plugins/generator/placeholder
//
// Usage:
//   artforge process --generate --generator plugin --plugin-path ./artforge-placeholder
//
// License: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/noisebox/artforge/pkg/plugin"
)

// PlaceholderPlugin implements plugin.GeneratorPlugin.
type PlaceholderPlugin struct{}

// Generate renders the placeholder for req.
func (p *PlaceholderPlugin) Generate(ctx context.Context, req plugin.GenerateRequest) ([]byte, error) {
	if req.Size <= 0 || req.Size > 4096 {
		return nil, fmt.Errorf("unsupported size %d", req.Size)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, render(req.Prompt, req.Size)); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// GetMetadata returns plugin metadata.
func (p *PlaceholderPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "placeholder",
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Offline brass disc placeholder generator",
	}
}

// render draws a shaded disc whose tint is seeded by prompt.
func render(prompt string, size int) *image.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	seed := h.Sum32()

	base := color.NRGBA{
		R: 150 + uint8(seed%60),
		G: 100 + uint8((seed>>8)%50),
		B: 30 + uint8((seed>>16)%40),
		A: 0xff,
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	radius := c * 0.8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			d := math.Hypot(dx, dy)
			if d > radius {
				img.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
				continue
			}
			// Light from the top left.
			shade := 0.75 + 0.25*(-dx-dy)/(2*radius)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(math.Min(255, float64(base.R)*shade)),
				G: uint8(math.Min(255, float64(base.G)*shade)),
				B: uint8(math.Min(255, float64(base.B)*shade)),
				A: 0xff,
			})
		}
	}
	return img
}

func main() {
	plugin.Serve(&PlaceholderPlugin{})
}
