package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

// DefaultGenAIModel is used when no model is configured.
const DefaultGenAIModel = "gemini-2.5-flash-image"

// GenAI generates images through the Google Gen AI SDK.
type GenAI struct {
	apiKey string
	model  string
	logger hclog.Logger

	client *genai.Client
}

// NewGenAI returns a Gen AI backend. The API key is required.
func NewGenAI(apiKey, model string, logger hclog.Logger) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY or --api-key is required (get one at https://aistudio.google.com/api-keys)", ErrMissingCredential)
	}
	if model == "" {
		model = DefaultGenAIModel
	}
	return &GenAI{apiKey: apiKey, model: model, logger: logger.Named("genai")}, nil
}

func (g *GenAI) clientSetup(ctx context.Context) (*genai.Client, error) {
	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gen AI client: %v", ErrRemoteGeneration, err)
	}
	g.client = client
	return client, nil
}

// isGeminiModel reports whether model uses GenerateContent rather than GenerateImages.
func isGeminiModel(model string) bool {
	return strings.HasPrefix(model, "gemini-")
}

// Generate implements Generator. Output is always square.
func (g *GenAI) Generate(ctx context.Context, prompt string, size int) ([]byte, error) {
	client, err := g.clientSetup(ctx)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("requesting image", "model", g.model, "size", size, "prompt", prompt)

	var data []byte
	if isGeminiModel(g.model) {
		data, err = g.generateWithGemini(ctx, client, prompt)
	} else {
		data, err = g.generateWithImagen(ctx, client, prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteGeneration, err)
	}

	g.logger.Debug("received image data", "bytes", len(data))
	return data, nil
}

func (g *GenAI) generateWithImagen(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	response, err := client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(response.GeneratedImages) == 0 {
		return nil, fmt.Errorf("no images generated in response")
	}

	generated := response.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return nil, fmt.Errorf("image was filtered by safety system: %s", generated.RAIFilteredReason)
	}
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("generated image has no image data")
	}

	return generated.Image.ImageBytes, nil
}

func (g *GenAI) generateWithGemini(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: []string{"Image"},
	}
	contents := genai.Text(fmt.Sprintf("Generate an image with aspect ratio 1:1: %s", prompt))

	response, err := client.Models.GenerateContent(ctx, g.model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no image data in response")
	}

	for _, part := range response.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}

	return nil, fmt.Errorf("no inline image data found in response")
}
