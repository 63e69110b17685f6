package generate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	imageio "github.com/noisebox/artforge/internal/image"
)

// DefaultCacheDir returns the default directory for cached generations.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "artforge", "generated"), nil
	}
	return filepath.Join(cacheDir, "artforge", "generated"), nil
}

// Cached stores generator output on disk so a repeated prompt does not hit
// the remote backend again.
type Cached struct {
	inner   Generator
	dir     string
	backend string
	model   string
	logger  hclog.Logger
}

// NewCached wraps inner with a cache rooted at dir.
func NewCached(inner Generator, dir, backend, model string, logger hclog.Logger) *Cached {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cached{inner: inner, dir: dir, backend: backend, model: model, logger: logger.Named("cache")}
}

// Key returns the cache filename for a request.
func (c *Cached) Key(prompt string, size int) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s\x00%s\x00%s\x00%d", c.backend, c.model, prompt, size))
	return fmt.Sprintf("%x.img", hash[:16])
}

// Generate implements Generator. Only bytes that decode as an image are
// stored, and a stored entry that no longer decodes counts as a miss.
func (c *Cached) Generate(ctx context.Context, prompt string, size int) ([]byte, error) {
	path := filepath.Join(c.dir, c.Key(prompt, size))

	if data, err := os.ReadFile(path); err == nil { // #nosec G304 - path is derived from a hash
		if _, err := imageio.DecodeBytes(data); err == nil {
			c.logger.Debug("cache hit", "path", path)
			return data, nil
		}
		c.logger.Warn("discarding corrupt cache entry", "path", path)
		if err := os.Remove(path); err != nil {
			c.logger.Warn("failed to remove cache entry", "path", path, "error", err)
		}
	}

	data, err := c.inner.Generate(ctx, prompt, size)
	if err != nil {
		return nil, err
	}

	if _, err := imageio.DecodeBytes(data); err != nil {
		c.logger.Warn("not caching generator output", "error", err)
		return data, nil
	}
	if err := imageio.WriteFile(path, data); err != nil {
		c.logger.Warn("failed to cache generated image", "path", path, "error", err)
	}
	return data, nil
}

// Close releases the wrapped generator.
func (c *Cached) Close() {
	Close(c.inner)
}
