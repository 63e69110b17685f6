// Package generate provides text-to-image backends used to fill gaps in the
// UI element catalog.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

var (
	// ErrRemoteGeneration is returned when a generator could not produce an image.
	ErrRemoteGeneration = errors.New("remote generation failed")

	// ErrMissingCredential is returned when a backend has no API key.
	ErrMissingCredential = fmt.Errorf("%w: missing credential", ErrRemoteGeneration)
)

// Generator renders a prompt into encoded image bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string, size int) ([]byte, error)
}

// Closer is implemented by generators that hold external resources.
type Closer interface {
	Close()
}

// Kind selects a generation backend.
type Kind string

const (
	KindGenAI  Kind = "genai"
	KindOpenAI Kind = "openai"
	KindPlugin Kind = "plugin"
)

// Kinds returns every supported backend.
func Kinds() []Kind {
	return []Kind{KindGenAI, KindOpenAI, KindPlugin}
}

// ParseKind converts a flag value into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown generator %q (valid: genai, openai, plugin)", s)
}

// Config selects and configures a backend.
type Config struct {
	Backend    Kind
	APIKey     string
	Model      string
	PluginPath string

	// BaseURL overrides the OpenAI endpoint root.
	BaseURL string

	// CacheDir is where generated images are cached. Empty means DefaultCacheDir.
	CacheDir string
	NoCache  bool

	Logger hclog.Logger
}

// New builds the configured generator, wrapped in the cache unless disabled.
func New(cfg Config) (Generator, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var (
		gen   Generator
		model string
	)

	switch cfg.Backend {
	case KindGenAI:
		g, err := NewGenAI(cfg.APIKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		gen, model = g, g.model
	case KindOpenAI, "":
		o, err := NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, logger)
		if err != nil {
			return nil, err
		}
		gen, model = o, o.model
	case KindPlugin:
		p, err := NewPlugin(cfg.PluginPath, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		gen, model = p, cfg.Model
	default:
		return nil, fmt.Errorf("unknown generator backend: %s", cfg.Backend)
	}

	if cfg.NoCache {
		return gen, nil
	}

	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = DefaultCacheDir()
		if err != nil {
			logger.Warn("generation cache disabled", "error", err)
			return gen, nil
		}
	}

	backend := cfg.Backend
	if backend == "" {
		backend = KindOpenAI
	}
	return NewCached(gen, dir, string(backend), model, logger), nil
}

// Close releases resources held by gen, if any.
func Close(gen Generator) {
	if c, ok := gen.(Closer); ok {
		c.Close()
	}
}
