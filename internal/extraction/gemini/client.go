// Package gemini implements the size chart extraction boundary on top of
// the Gemini vision API.
package gemini

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"sizefit-engine/internal/common/errors"
	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/extraction"
)

const defaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client wraps the Google GenAI client to extract size charts from images.
type Client struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	logger    logger.Logger
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, cfg Config, log logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, stderrors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Client{
		client:    client,
		modelName: model,
		timeout:   timeout,
		logger:    log.WithFields(map[string]interface{}{"component": "gemini"}),
	}, nil
}

// ExtractSizeChart sends the size chart image and extraction instructions to
// the vision model and returns the raw chart data it read.
func (c *Client) ExtractSizeChart(ctx context.Context, req *extraction.Request) (*extraction.Result, error) {
	imageData, err := decodeImage(req.ImageBase64)
	if err != nil {
		return nil, errors.NewInvalidExtractionError(fmt.Sprintf("decode image: %v", err))
	}

	prompt := extraction.BuildPrompt(req)

	c.logger.Info("requesting size chart extraction", map[string]interface{}{
		"model":        c.modelName,
		"clothingType": req.ClothingType,
		"fabricType":   req.FabricType,
		"imageBytes":   len(imageData),
	})

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: imageData}},
		},
	}}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewExtractionTimeoutError("gemini")
		}
		return nil, errors.NewExtractionFailedError(err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, errors.NewInvalidExtractionError("model returned an empty response")
	}

	result, err := ParseResult(text)
	if err != nil {
		return nil, err
	}

	c.logger.Info("size chart extracted", map[string]interface{}{
		"sizes": len(result.ExtractedSizes),
	})

	return result, nil
}

// decodeImage accepts either bare base64 data or a data URL.
func decodeImage(imageBase64 string) ([]byte, error) {
	payload := imageBase64
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, stderrors.New("empty image payload")
	}
	return base64.StdEncoding.DecodeString(payload)
}

func responseText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
