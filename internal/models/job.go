package models

import "time"

// JobStatus is the lifecycle state of an analysis job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether the status is a terminal state.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// AnalysisResult is the payload carried by a completed analysis job: the
// recommendation plus the request context it was computed for.
type AnalysisResult struct {
	RecommendationResult

	ProfileID    string `json:"profileId,omitempty"`
	ClothingType string `json:"clothingType"`
	FabricType   string `json:"fabricType"`
}

// AnalysisJob tracks one asynchronous extraction-then-scoring run. Records
// are ephemeral: they live in process memory until the retention sweep
// evicts them.
type AnalysisJob struct {
	ID        string          `json:"id"`
	Status    JobStatus       `json:"status"`
	Progress  int             `json:"progress"`
	Result    *AnalysisResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
