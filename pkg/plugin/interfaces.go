package plugin

import (
	"context"
)

// GeneratorPlugin is the interface external image generators implement.
type GeneratorPlugin interface {
	// Generate renders the prompt as an encoded image (PNG or JPEG) of
	// roughly Size x Size pixels.
	Generate(ctx context.Context, req GenerateRequest) ([]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
