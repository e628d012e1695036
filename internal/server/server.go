// Package server exposes the analysis API over HTTP: asynchronous
// image-based analysis jobs plus a synchronous recommendation endpoint for
// callers that already hold chart data.
package server

import (
	"encoding/json"
	goerrors "errors"
	"net/http"

	"sizefit-engine/internal/common/errors"
	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/common/validation"
	"sizefit-engine/internal/extraction"
	"sizefit-engine/internal/fitting/normalize"
	"sizefit-engine/internal/fitting/scoring"
	"sizefit-engine/internal/jobs"
	"sizefit-engine/internal/models"
)

// Server wires the HTTP surface to the orchestrator and the scoring engine.
type Server struct {
	orchestrator *jobs.Orchestrator
	engine       *scoring.Engine
	logger       logger.Logger
}

func New(orchestrator *jobs.Orchestrator, engine *scoring.Engine, log logger.Logger) *Server {
	return &Server{
		orchestrator: orchestrator,
		engine:       engine,
		logger:       log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Handler returns the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analysis", s.handleSubmitAnalysis)
	mux.HandleFunc("GET /api/v1/analysis/{id}", s.handleGetAnalysis)
	mux.HandleFunc("POST /api/v1/recommendation", s.handleRecommendation)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// analysisRequest is the submission payload for an asynchronous analysis
// job. JobID is optional; omitted IDs are generated server-side.
type analysisRequest struct {
	JobID        string              `json:"jobId,omitempty"`
	ImageBase64  string              `json:"imageBase64"`
	Profile      *models.BodyProfile `json:"profile"`
	ClothingType string              `json:"clothingType"`
	FabricType   string              `json:"fabricType,omitempty"`
}

const analysisRequestSchema = `{
	"type": "object",
	"required": ["imageBase64", "profile", "clothingType"],
	"properties": {
		"jobId": {"type": "string"},
		"imageBase64": {"type": "string", "minLength": 1},
		"clothingType": {"type": "string", "minLength": 1},
		"fabricType": {"type": "string"},
		"profile": {
			"type": "object",
			"required": ["height", "weight", "chest", "waist", "hip"],
			"properties": {
				"height": {"type": "number", "exclusiveMinimum": 0},
				"weight": {"type": "number", "exclusiveMinimum": 0},
				"chest": {"type": "number", "exclusiveMinimum": 0},
				"waist": {"type": "number", "exclusiveMinimum": 0},
				"hip": {"type": "number", "exclusiveMinimum": 0}
			}
		}
	}
}`

// recommendationRequest is the synchronous scoring payload: the caller
// already has raw chart data and skips extraction.
type recommendationRequest struct {
	Profile        *models.BodyProfile `json:"profile"`
	ExtractedSizes models.RawSizeChart `json:"extractedSizes"`
	ClothingType   string              `json:"clothingType"`
	FabricType     string              `json:"fabricType,omitempty"`
}

const recommendationRequestSchema = `{
	"type": "object",
	"required": ["profile", "extractedSizes", "clothingType"],
	"properties": {
		"clothingType": {"type": "string", "minLength": 1},
		"fabricType": {"type": "string"},
		"extractedSizes": {
			"type": "object",
			"additionalProperties": {"type": "object"}
		},
		"profile": {
			"type": "object",
			"required": ["height", "weight", "chest", "waist", "hip"],
			"properties": {
				"height": {"type": "number", "exclusiveMinimum": 0},
				"weight": {"type": "number", "exclusiveMinimum": 0},
				"chest": {"type": "number", "exclusiveMinimum": 0},
				"waist": {"type": "number", "exclusiveMinimum": 0},
				"hip": {"type": "number", "exclusiveMinimum": 0}
			}
		}
	}
}`

func (s *Server) handleSubmitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if !s.decodeAndValidate(w, r, &req, analysisRequestSchema) {
		return
	}

	jobID, err := s.orchestrator.Submit(req.JobID, &extraction.Request{
		ImageBase64:  req.ImageBase64,
		Profile:      req.Profile,
		ClothingType: req.ClothingType,
		FabricType:   models.ParseFabricCategory(req.FabricType),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"jobId":  jobID,
		"status": models.JobPending,
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	job, err := s.orchestrator.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if !s.decodeAndValidate(w, r, &req, recommendationRequestSchema) {
		return
	}

	chart := normalize.Chart(req.ExtractedSizes)
	result, err := s.engine.Recommend(req.Profile, chart, req.ClothingType, models.ParseFabricCategory(req.FabricType))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAndValidate parses the body into dst and checks it against the
// schema. It writes the error response itself and reports success.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, schema string) bool {
	var document interface{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body is not valid JSON"})
		return false
	}

	result, err := validation.ValidateDocument(schema, document)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "request validation failed"})
		return false
	}
	if !result.Valid {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": result.ErrorSummary()})
		return false
	}

	raw, err := json.Marshal(document)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "request processing failed"})
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body does not match the expected shape"})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}

// writeError maps standardized error codes to HTTP statuses. Unknown errors
// become opaque 500s.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsCode(err, errors.ErrCodeJobNotFound):
		status = http.StatusNotFound
	case errors.IsCode(err, errors.ErrCodeDuplicateJob):
		status = http.StatusConflict
	case errors.IsCode(err, errors.ErrCodeEmptyChart),
		errors.IsCode(err, errors.ErrCodeInvalidExtraction),
		errors.IsCode(err, errors.ErrCodeImageUnreadable):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", nil)
		s.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}

	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) {
		s.writeJSON(w, status, stdErr)
		return
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
