// Package batch rasterizes every image under the per-category originals
// into UI-ready variants and optionally generates art for missing catalog
// variants.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/noisebox/artforge/internal/assets"
	"github.com/noisebox/artforge/internal/generate"
	imageio "github.com/noisebox/artforge/internal/image"
	"github.com/noisebox/artforge/internal/layout"
	"github.com/noisebox/artforge/internal/logging"
	"github.com/noisebox/artforge/internal/raster"
)

// GeneratedSuffix is appended to a variant name for art that came from a
// generator.
const GeneratedSuffix = "_generated"

// CategoryReport summarises one category run.
type CategoryReport struct {
	Category assets.Category
	// InputMissing is set when original/{category} does not exist.
	InputMissing bool
	Sources      int
	Written      int
	Skipped      int
	Failed       int
	// Generated lists the variants that were generated and rasterized.
	Generated []string
	// GenerationFailed lists the variants whose generation failed.
	GenerationFailed []string
	// Errors holds every non-fatal failure in the order it happened.
	Errors []error
}

func (r *CategoryReport) fail(err error) {
	r.Failed++
	r.Errors = append(r.Errors, err)
}

// Report aggregates the category reports of a run.
type Report struct {
	Categories []CategoryReport
}

// Written returns the number of variant files written across categories.
func (r Report) Written() int {
	n := 0
	for _, c := range r.Categories {
		n += c.Written
	}
	return n
}

// Failed returns the number of failed raster invocations across categories.
func (r Report) Failed() int {
	n := 0
	for _, c := range r.Categories {
		n += c.Failed
	}
	return n
}

// Generated returns the number of generated variants across categories.
func (r Report) Generated() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Generated)
	}
	return n
}

// Processor runs the batch pipeline against one project layout.
type Processor struct {
	layout     layout.Layout
	rasterizer raster.Rasterizer
	generator  generate.Generator
	sizes      []int
	force      bool
	logger     hclog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithSizes overrides the variant sizes.
func WithSizes(sizes []int) Option {
	return func(p *Processor) {
		p.sizes = append([]int(nil), sizes...)
	}
}

// WithGenerator sets the generator used to fill catalog gaps.
func WithGenerator(g generate.Generator) Option {
	return func(p *Processor) {
		p.generator = g
	}
}

// WithForce re-renders variants whose output file already exists.
func WithForce(force bool) Option {
	return func(p *Processor) {
		p.force = force
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// New returns a Processor writing under l with r.
func New(l layout.Layout, r raster.Rasterizer, opts ...Option) *Processor {
	p := &Processor{
		layout:     l,
		rasterizer: r,
		sizes:      append([]int(nil), assets.BatchSizes...),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessAll runs ProcessCategory for each category in order. It stops
// early only when ctx is cancelled.
func (p *Processor) ProcessAll(ctx context.Context, categories []assets.Category, withGeneration bool) Report {
	var report Report
	for _, c := range categories {
		if ctx.Err() != nil {
			break
		}
		report.Categories = append(report.Categories, p.ProcessCategory(ctx, c, withGeneration))
	}
	return report
}

// ProcessCategory rasterizes every image in original/{c} and, when
// withGeneration is set, fills variants the ui-ready directory lacks.
func (p *Processor) ProcessCategory(ctx context.Context, c assets.Category, withGeneration bool) CategoryReport {
	report := CategoryReport{Category: c}
	logger := p.logger.With("category", c)

	inputDir := p.layout.OriginalDir(c)
	sources, err := imageio.ScanDirectoryForImages(inputDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Warn("input directory not found", "path", inputDir)
		report.InputMissing = true
	case err != nil:
		logger.Error("failed to scan input directory", "path", inputDir, "error", err)
		report.Errors = append(report.Errors, err)
	}

	report.Sources = len(sources)
	logger.Info("processing category", "images", len(sources))

	for _, src := range sources {
		if ctx.Err() != nil {
			return report
		}
		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		p.rasterizeAll(ctx, &report, logger, src, stem)
	}

	if withGeneration && p.generator != nil {
		p.fillGaps(ctx, &report, logger)
	}

	return report
}

// rasterizeAll renders src at every size under name and returns how many
// files it wrote. A failure at one size is recorded and the remaining sizes
// still run.
func (p *Processor) rasterizeAll(ctx context.Context, report *CategoryReport, logger hclog.Logger, src, name string) int {
	written := 0
	for _, size := range p.sizes {
		if ctx.Err() != nil {
			break
		}
		out := p.layout.VariantPath(report.Category, name, size)

		if !p.force {
			if _, err := os.Stat(out); err == nil {
				logger.Debug("variant exists, skipping", "path", out)
				report.Skipped++
				continue
			}
		}

		if err := p.rasterizer.ResizeAndKey(ctx, src, out, size); err != nil {
			logger.Error("failed to rasterize", "source", filepath.Base(src), "size", size, "error", err)
			report.fail(fmt.Errorf("%s at %d: %w", filepath.Base(src), size, err))
			continue
		}
		logger.Debug("wrote variant", "path", out)
		report.Written++
		written++
	}
	return written
}

func (p *Processor) fillGaps(ctx context.Context, report *CategoryReport, logger hclog.Logger) {
	element, ok := assets.LookupElement(report.Category)
	if !ok {
		return
	}

	missing, err := MissingVariants(p.layout.UIReadyDir(report.Category), element.Variants)
	if err != nil {
		logger.Error("failed to inspect ui-ready directory", "error", err)
		report.Errors = append(report.Errors, err)
		return
	}

	for _, variant := range missing {
		if ctx.Err() != nil {
			return
		}

		prompt := element.Prompt(variant)
		logger.Info("generating variant", "variant", variant)

		data, err := p.generator.Generate(ctx, prompt, assets.GenerationSize)
		if err == nil {
			_, err = imageio.DecodeBytes(data)
			if err != nil {
				err = fmt.Errorf("%w: generated data is not an image: %v", generate.ErrRemoteGeneration, err)
			}
		}
		if err != nil {
			logger.Error("generation failed", "variant", variant, "error", err)
			report.GenerationFailed = append(report.GenerationFailed, variant)
			report.Errors = append(report.Errors, fmt.Errorf("generate %s: %w", variant, err))
			continue
		}

		src := p.layout.GeneratedPath(report.Category, variant, assets.GenerationSize)
		if err := imageio.WriteFile(src, data); err != nil {
			logger.Error("failed to save generated image", "path", src, "error", err)
			report.GenerationFailed = append(report.GenerationFailed, variant)
			report.Errors = append(report.Errors, err)
			continue
		}

		if p.rasterizeAll(ctx, report, logger, src, variant+GeneratedSuffix) == 0 {
			logger.Error("generated variant produced no files", "variant", variant)
			report.GenerationFailed = append(report.GenerationFailed, variant)
			continue
		}
		report.Generated = append(report.Generated, variant)
	}
}

// MissingVariants returns the variants with no PNG in uiReadyDir whose name
// contains the variant as a whole underscore-delimited segment. A missing
// directory means every variant is missing.
func MissingVariants(uiReadyDir string, variants []string) ([]string, error) {
	files, err := imageio.ScanDirectory(uiReadyDir, imageio.IsPNG)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	stems := make([]string, 0, len(files))
	for _, f := range files {
		stems = append(stems, "_"+strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))+"_")
	}

	var missing []string
	for _, v := range variants {
		if !hasSegment(stems, v) {
			missing = append(missing, v)
		}
	}
	return missing, nil
}

func hasSegment(wrappedStems []string, variant string) bool {
	needle := "_" + variant + "_"
	for _, s := range wrappedStems {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
