// Package extractor turns the priority photo table into transparent,
// multi-resolution PNGs.
package extractor

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/noisebox/artforge/internal/assets"
	imageio "github.com/noisebox/artforge/internal/image"
	"github.com/noisebox/artforge/internal/layout"
	"github.com/noisebox/artforge/internal/logging"
	"github.com/noisebox/artforge/internal/transform"
)

var (
	// ErrSourceNotFound marks an asset whose source photo is missing.
	ErrSourceNotFound = errors.New("source not found")

	// ErrTransform marks a failure while decoding, keying, resizing,
	// encoding or writing an asset.
	ErrTransform = errors.New("transform failed")
)

// Status is the outcome of extracting one asset.
type Status int

const (
	StatusSucceeded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result reports what happened to one AssetSpec.
type Result struct {
	Spec   assets.AssetSpec
	Status Status
	// Err is nil on success and wraps ErrSourceNotFound or ErrTransform otherwise.
	Err error
	// Raw is the full-resolution keyed image.
	Raw *image.NRGBA
	// Variants maps each canvas size to its normalized image.
	Variants map[int]*image.NRGBA
	// Files lists the paths written, raw first then variants in size order.
	Files []string
}

// Extractor runs the per-asset extraction pipeline.
type Extractor struct {
	layout layout.Layout
	loader imageio.Loader
	sizes  []int
	logger hclog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSizes overrides the variant sizes.
func WithSizes(sizes []int) Option {
	return func(e *Extractor) {
		e.sizes = append([]int(nil), sizes...)
	}
}

// WithLoader overrides the image loader.
func WithLoader(loader imageio.Loader) Option {
	return func(e *Extractor) {
		e.loader = loader
	}
}

// WithLogger sets the logger used by Run.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor writing into the given layout.
func New(l layout.Layout, opts ...Option) *Extractor {
	e := &Extractor{
		layout: l,
		loader: imageio.NewFileLoader(),
		sizes:  append([]int(nil), assets.ExtractSizes...),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sizes returns the configured variant sizes.
func (e *Extractor) Sizes() []int {
	return append([]int(nil), e.sizes...)
}

// Extract processes a single asset. A missing source photo is reported as
// StatusSkipped without touching the filesystem. Files are only written once
// every image has been encoded, and a failed write removes whatever this
// call already wrote.
func (e *Extractor) Extract(spec assets.AssetSpec) (res Result) {
	res = Result{Spec: spec}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Spec: spec, Status: StatusFailed, Err: fmt.Errorf("%w: %v", ErrTransform, r)}
		}
	}()

	srcPath := e.layout.SourcePath(spec)
	if _, err := os.Stat(srcPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Status = StatusSkipped
			res.Err = fmt.Errorf("%w: %s", ErrSourceNotFound, spec.SourceFile)
			return res
		}
		return failed(res, fmt.Errorf("failed to stat source: %w", err))
	}

	img, err := e.loader.Load(srcPath)
	if err != nil {
		return failed(res, err)
	}

	raw := transform.RemoveBackground(img, spec.Background, spec.Threshold)

	type pending struct {
		path string
		data []byte
	}
	var writes []pending

	rawData, err := imageio.EncodePNG(raw)
	if err != nil {
		return failed(res, err)
	}
	writes = append(writes, pending{e.layout.RawPath(spec.Category, spec.OutputName), rawData})

	variants := make(map[int]*image.NRGBA, len(e.sizes))
	for _, size := range e.sizes {
		v := transform.Normalize(raw, size)
		data, err := imageio.EncodePNG(v)
		if err != nil {
			return failed(res, fmt.Errorf("size %d: %w", size, err))
		}
		variants[size] = v
		writes = append(writes, pending{e.layout.VariantPath(spec.Category, spec.OutputName, size), data})
	}

	files := make([]string, 0, len(writes))
	for _, w := range writes {
		if err := imageio.WriteFile(w.path, w.data); err != nil {
			for _, f := range files {
				os.Remove(f)
			}
			return failed(res, err)
		}
		files = append(files, w.path)
	}

	res.Status = StatusSucceeded
	res.Raw = raw
	res.Variants = variants
	res.Files = files
	return res
}

func failed(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = fmt.Errorf("%w: %w", ErrTransform, err)
	return res
}

// Summary aggregates the results of a Run.
type Summary struct {
	Results   []Result
	Succeeded int
	Skipped   int
	Failed    int
}

// Total returns the number of assets attempted.
func (s Summary) Total() int {
	return len(s.Results)
}

// FilesWritten returns the number of files written across all assets.
func (s Summary) FilesWritten() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Files)
	}
	return n
}

// Run extracts every spec in order. Failures are logged and never stop the
// batch.
func (e *Extractor) Run(specs []assets.AssetSpec) Summary {
	var summary Summary
	for _, spec := range specs {
		res := e.Extract(spec)
		// Pixels are dropped here; callers that need them use Extract.
		res.Raw, res.Variants = nil, nil

		switch res.Status {
		case StatusSucceeded:
			summary.Succeeded++
			e.logger.Info("extracted asset", "asset", spec.OutputName, "category", spec.Category, "sizes", e.sizes)
		case StatusSkipped:
			summary.Skipped++
			e.logger.Warn("skipping asset", "asset", spec.OutputName, "source", spec.SourceFile, "reason", res.Err)
		case StatusFailed:
			summary.Failed++
			e.logger.Error("asset failed", "asset", spec.OutputName, "error", res.Err)
		}
		summary.Results = append(summary.Results, res)
	}
	return summary
}
