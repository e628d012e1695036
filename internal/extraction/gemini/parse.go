package gemini

import (
	"encoding/json"
	"strings"

	"sizefit-engine/internal/common/errors"
	"sizefit-engine/internal/common/validation"
	"sizefit-engine/internal/extraction"
)

// resultSchema constrains the shape of the model's JSON response before it
// is trusted: size entries must be objects and cell values numbers or
// strings (ranges arrive as strings).
const resultSchema = `{
	"type": "object",
	"required": ["extractedSizes"],
	"properties": {
		"extractedSizes": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"additionalProperties": {"type": ["number", "string"]}
			}
		},
		"analysis": {"type": "string"},
		"imageQuality": {"type": "string"}
	}
}`

// ParseResult decodes and validates the model's JSON response. A response
// reporting poor image quality or an ERROR analysis becomes an
// image-unreadable error carrying the model's reason.
func ParseResult(text string) (*extraction.Result, error) {
	payload := stripCodeFence(text)

	var document interface{}
	if err := json.Unmarshal([]byte(payload), &document); err != nil {
		return nil, errors.NewInvalidExtractionError("response is not valid JSON: " + err.Error())
	}

	validated, err := validation.ValidateDocument(resultSchema, document)
	if err != nil {
		return nil, errors.NewInvalidExtractionError("schema validation failed: " + err.Error())
	}
	if !validated.Valid {
		return nil, errors.NewInvalidExtractionError(validated.ErrorSummary())
	}

	var result extraction.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, errors.NewInvalidExtractionError("decode response: " + err.Error())
	}

	if result.ImageQuality == "poor" || strings.HasPrefix(result.Analysis, "ERROR:") {
		reason := strings.TrimSpace(strings.TrimPrefix(result.Analysis, "ERROR:"))
		if reason == "" {
			reason = "image could not be processed"
		}
		return nil, errors.NewImageUnreadableError(reason)
	}

	if len(result.ExtractedSizes) == 0 {
		return nil, errors.NewInvalidExtractionError("no sizes extracted from the image")
	}

	return &result, nil
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
