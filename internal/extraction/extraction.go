// Package extraction defines the boundary to the external size chart
// extraction capability: a vision service that reads a size chart image and
// returns a raw, possibly noisy, size-to-measurements mapping.
package extraction

import (
	"context"

	"sizefit-engine/internal/models"
)

// Request carries the image payload plus the context the extraction service
// uses to focus on the right chart columns.
type Request struct {
	ImageBase64  string
	Profile      *models.BodyProfile
	ClothingType string
	FabricType   models.FabricCategory
}

// Result is the raw output of the extraction service. Measurement keys may
// be in any synonym form and values may be numbers or closed ranges; the
// normalizer cleans them before scoring.
type Result struct {
	ExtractedSizes models.RawSizeChart `json:"extractedSizes"`
	Analysis       string              `json:"analysis,omitempty"`
	ImageQuality   string              `json:"imageQuality,omitempty"`
}

// Extractor is the external capability that turns a size chart image into
// raw chart data. Calls may be slow and may fail; failures surface as job
// failures, never as retries within this core.
type Extractor interface {
	ExtractSizeChart(ctx context.Context, req *Request) (*Result, error)
}
