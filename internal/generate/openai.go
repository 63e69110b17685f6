package generate

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/noisebox/artforge/internal/util/http"
)

const (
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "dall-e-3"

	// DefaultOpenAIBaseURL is the API root for image generation.
	DefaultOpenAIBaseURL = "https://api.openai.com"
)

// OpenAI generates images through the OpenAI images endpoint.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// NewOpenAI returns an OpenAI backend. The API key is required.
func NewOpenAI(apiKey, model, baseURL string, logger hclog.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY or --api-key is required", ErrMissingCredential)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAI{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: httputil.DefaultTimeout},
		logger:  logger.Named("openai"),
	}, nil
}

type imagesRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imagesResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Generate implements Generator.
func (o *OpenAI) Generate(ctx context.Context, prompt string, size int) ([]byte, error) {
	body, err := json.Marshal(imagesRequest{
		Model:          o.model,
		Prompt:         prompt,
		N:              1,
		Size:           fmt.Sprintf("%dx%d", size, size),
		ResponseFormat: "url",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrRemoteGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrRemoteGeneration, err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", httputil.UserAgent())

	o.logger.Debug("requesting image", "model", o.model, "size", size, "prompt", prompt)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrRemoteGeneration, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, httputil.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrRemoteGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrRemoteGeneration, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed imagesResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrRemoteGeneration, err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w: no images in response", ErrRemoteGeneration)
	}

	first := parsed.Data[0]
	switch {
	case first.URL != "":
		data, err := httputil.Fetch(ctx, first.URL, httputil.FetchOptions{})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to download image: %v", ErrRemoteGeneration, err)
		}
		return data, nil
	case first.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(first.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64 image: %v", ErrRemoteGeneration, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: response has neither url nor b64_json", ErrRemoteGeneration)
	}
}
