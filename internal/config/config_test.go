package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/noisebox/artforge/internal/assets"
	"github.com/noisebox/artforge/internal/generate"
	"github.com/noisebox/artforge/internal/raster"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ProjectRoot != "." {
		t.Errorf("Expected project root '.', got %q", cfg.ProjectRoot)
	}
	if cfg.Rasterizer != raster.KindMagick {
		t.Errorf("Expected magick rasterizer, got %q", cfg.Rasterizer)
	}
	if cfg.Generator != generate.KindOpenAI {
		t.Errorf("Expected openai generator, got %q", cfg.Generator)
	}
	if !reflect.DeepEqual(cfg.ExtractSizes, []int{64, 128, 256}) {
		t.Errorf("Unexpected extract sizes %v", cfg.ExtractSizes)
	}
	if !reflect.DeepEqual(cfg.BatchSizes, []int{64, 128, 256, 512}) {
		t.Errorf("Unexpected batch sizes %v", cfg.BatchSizes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}

	cfg.ExtractSizes[0] = 1
	if assets.ExtractSizes[0] != 64 {
		t.Error("Default() must not alias the package size table")
	}
}

func TestLoad(t *testing.T) {
	cfg := Load(envMap(map[string]string{
		EnvProjectRoot: "/srv/skin",
		EnvRasterizer:  "builtin",
		EnvGenerator:   "openai",
		EnvGoogleKey:   "g-key",
		EnvOpenAIKey:   "o-key",
	}))

	if cfg.ProjectRoot != "/srv/skin" {
		t.Errorf("Expected /srv/skin, got %q", cfg.ProjectRoot)
	}
	if cfg.Rasterizer != raster.KindBuiltin {
		t.Errorf("Expected builtin, got %q", cfg.Rasterizer)
	}
	if cfg.Generator != generate.KindOpenAI {
		t.Errorf("Expected openai, got %q", cfg.Generator)
	}
	if cfg.ResolvedAPIKey() != "o-key" {
		t.Errorf("Expected OpenAI key, got %q", cfg.ResolvedAPIKey())
	}

	cfg.Generator = generate.KindGenAI
	if cfg.ResolvedAPIKey() != "g-key" {
		t.Errorf("Expected Google key, got %q", cfg.ResolvedAPIKey())
	}

	cfg.APIKey = "flag-key"
	if cfg.ResolvedAPIKey() != "flag-key" {
		t.Errorf("Expected --api-key to win, got %q", cfg.ResolvedAPIKey())
	}
}

func TestLoadGeneratorFromKeys(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want generate.Kind
	}{
		{"no keys", map[string]string{}, generate.KindOpenAI},
		{"openai key only", map[string]string{EnvOpenAIKey: "o-key"}, generate.KindOpenAI},
		{"google key only", map[string]string{EnvGoogleKey: "g-key"}, generate.KindGenAI},
		{"both keys", map[string]string{EnvGoogleKey: "g-key", EnvOpenAIKey: "o-key"}, generate.KindOpenAI},
		{"explicit generator", map[string]string{EnvGoogleKey: "g-key", EnvGenerator: "plugin"}, generate.KindPlugin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load(envMap(tt.env))
			if cfg.Generator != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, cfg.Generator)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errText string
	}{
		{"empty root", func(c *Config) { c.ProjectRoot = "" }, "project root"},
		{"verbose and quiet", func(c *Config) { c.Verbose, c.Quiet = true, true }, "mutually exclusive"},
		{"zero size", func(c *Config) { c.BatchSizes = []int{64, 0} }, "must be positive"},
		{"negative size", func(c *Config) { c.ExtractSizes = []int{-1} }, "must be positive"},
		{"no sizes", func(c *Config) { c.ExtractSizes = nil }, "must not be empty"},
		{"bad rasterizer", func(c *Config) { c.Rasterizer = "gimp" }, "unknown rasterizer"},
		{"bad generator", func(c *Config) { c.Generator = "dalle" }, "unknown generator"},
		{"bad category", func(c *Config) { c.Category = "knbos" }, "did you mean"},
		{"plugin without path", func(c *Config) { c.Generate, c.Generator = true, generate.KindPlugin }, "--plugin-path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	cfg := Default()
	all, err := cfg.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(assets.Categories()) {
		t.Errorf("Expected every category, got %v", all)
	}

	cfg.Category = "Sliders"
	one, err := cfg.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(one, []assets.Category{assets.CategorySliders}) {
		t.Errorf("Expected [sliders], got %v", one)
	}
}
