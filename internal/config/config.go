// Package config resolves artforge settings from the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/noisebox/artforge/internal/assets"
	"github.com/noisebox/artforge/internal/generate"
	"github.com/noisebox/artforge/internal/raster"
)

// Environment variables read by Load.
const (
	EnvProjectRoot = "ARTFORGE_PROJECT_ROOT"
	EnvRasterizer  = "ARTFORGE_RASTERIZER"
	EnvGenerator   = "ARTFORGE_GENERATOR"
	EnvGoogleKey   = "GOOGLE_API_KEY"
	EnvOpenAIKey   = "OPENAI_API_KEY"
)

// Config holds every setting a command may need.
type Config struct {
	ProjectRoot string
	Verbose     bool
	Quiet       bool

	ExtractSizes []int
	BatchSizes   []int

	Rasterizer raster.Kind
	Force      bool

	Category   string
	Generate   bool
	Generator  generate.Kind
	Model      string
	PluginPath string
	NoCache    bool
	CacheDir   string

	// APIKey is the --api-key flag; it wins over the environment keys.
	APIKey       string
	GoogleAPIKey string
	OpenAIAPIKey string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ProjectRoot:  ".",
		ExtractSizes: append([]int(nil), assets.ExtractSizes...),
		BatchSizes:   append([]int(nil), assets.BatchSizes...),
		Rasterizer:   raster.KindMagick,
		Generator:    generate.KindOpenAI,
	}
}

// Load returns Default overlaid with any environment variables that are set.
// A nil getenv reads the process environment.
func Load(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	if v := getenv(EnvProjectRoot); v != "" {
		cfg.ProjectRoot = v
	}
	if v := getenv(EnvRasterizer); v != "" {
		cfg.Rasterizer = raster.Kind(v)
	}
	cfg.GoogleAPIKey = getenv(EnvGoogleKey)
	cfg.OpenAIAPIKey = getenv(EnvOpenAIKey)
	switch v := getenv(EnvGenerator); {
	case v != "":
		cfg.Generator = generate.Kind(v)
	case cfg.OpenAIAPIKey == "" && cfg.GoogleAPIKey != "":
		// Only a Google key is available.
		cfg.Generator = generate.KindGenAI
	}
	return cfg
}

// ResolvedAPIKey returns the credential for the selected generator.
func (c Config) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Generator {
	case generate.KindOpenAI:
		return c.OpenAIAPIKey
	case generate.KindGenAI:
		return c.GoogleAPIKey
	default:
		return ""
	}
}

// Categories returns the categories to process: the one named by Category,
// or all of them.
func (c Config) Categories() ([]assets.Category, error) {
	if c.Category == "" {
		return assets.Categories(), nil
	}
	cat, err := assets.ParseCategory(c.Category)
	if err != nil {
		return nil, err
	}
	return []assets.Category{cat}, nil
}

// GeneratorConfig builds the generate.Config for this configuration.
func (c Config) GeneratorConfig() generate.Config {
	return generate.Config{
		Backend:    c.Generator,
		APIKey:     c.ResolvedAPIKey(),
		Model:      c.Model,
		PluginPath: c.PluginPath,
		CacheDir:   c.CacheDir,
		NoCache:    c.NoCache,
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.ProjectRoot == "" {
		errs = append(errs, errors.New("project root must not be empty"))
	}
	if c.Verbose && c.Quiet {
		errs = append(errs, errors.New("--verbose and --quiet are mutually exclusive"))
	}
	if err := validateSizes("extract", c.ExtractSizes); err != nil {
		errs = append(errs, err)
	}
	if err := validateSizes("batch", c.BatchSizes); err != nil {
		errs = append(errs, err)
	}
	if _, err := raster.New(c.Rasterizer); err != nil {
		errs = append(errs, err)
	}
	if _, err := generate.ParseKind(string(c.Generator)); err != nil {
		errs = append(errs, err)
	}
	if c.Category != "" {
		if _, err := assets.ParseCategory(c.Category); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Generate && c.Generator == generate.KindPlugin && c.PluginPath == "" {
		errs = append(errs, errors.New("--plugin-path is required with --generator plugin"))
	}

	return errors.Join(errs...)
}

func validateSizes(name string, sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("%s sizes must not be empty", name)
	}
	for _, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("%s size %d must be positive", name, s)
		}
	}
	return nil
}
