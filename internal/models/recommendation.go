package models

// Confidence is the tier assigned to a size recommendation.
type Confidence string

const (
	ConfidencePerfect Confidence = "Perfect"
	ConfidenceGood    Confidence = "Good"
	ConfidenceLoose   Confidence = "Loose"
)

// MeasurementMatch records the comparison of one user measurement against
// one size's chart value. Difference is signed: chart minus user.
type MeasurementMatch struct {
	User            float64 `json:"user"`
	Chart           float64 `json:"chart"`
	Difference      float64 `json:"difference"`
	WithinTolerance bool    `json:"withinTolerance"`
}

// SizeScore is the per-size scoring breakdown. Derived per request, never
// persisted.
type SizeScore struct {
	Size             string                               `json:"size"`
	Score            float64                              `json:"score"`
	Matches          map[MeasurementName]MeasurementMatch `json:"matches"`
	PrimaryMatches   int                                  `json:"primaryMatches"`
	TotalMatches     int                                  `json:"totalMatches"`
	MeasurementCount int                                  `json:"measurementCount"`
	AllPrimaryFit    bool                                 `json:"allPrimaryFit"`
}

// ExceededMeasurement describes a primary measurement the body exceeds on
// the fallback size.
type ExceededMeasurement struct {
	Name       MeasurementName `json:"name"`
	UserValue  float64         `json:"userValue"`
	ChartValue float64         `json:"chartValue"`
	Excess     float64         `json:"excess"`
}

// RecommendationResult is the outcome of one scoring call. It is immutable
// once produced.
type RecommendationResult struct {
	RecommendedSize string                `json:"recommendedSize"`
	Confidence      Confidence            `json:"confidence"`
	MatchScore      int                   `json:"matchScore"`
	Analysis        string                `json:"analysis"`
	NormalizedChart SizeChart             `json:"extractedSizes"`
	Fallback        bool                  `json:"fallback,omitempty"`
	Exceeded        []ExceededMeasurement `json:"exceededMeasurements,omitempty"`
}
