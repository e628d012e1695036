package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/common/observability"
	"sizefit-engine/internal/extraction"
	"sizefit-engine/internal/fitting/scoring"
	"sizefit-engine/internal/jobs"
	"sizefit-engine/internal/models"
)

type stubExtractor struct {
	result *extraction.Result
	err    error
}

func (s *stubExtractor) ExtractSizeChart(_ context.Context, _ *extraction.Request) (*extraction.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T, ext extraction.Extractor) *httptest.Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	engine := scoring.NewEngine(log)
	orchestrator := jobs.New(ext, engine, log, observability.New("server-test"), jobs.Settings{
		SweepInterval: time.Hour,
		JobMaxAge:     time.Hour,
	})
	t.Cleanup(orchestrator.Close)

	ts := httptest.NewServer(New(orchestrator, engine, log).Handler())
	t.Cleanup(ts.Close)
	return ts
}

const validRecommendationBody = `{
	"profile": {"height": 170, "weight": 70, "chest": 95, "waist": 80, "hip": 100},
	"extractedSizes": {
		"S": {"waist": 70, "hip": 92},
		"M": {"waist": 76, "hip": 98},
		"L": {"waist": 82, "hip": 103}
	},
	"clothingType": "skirt",
	"fabricType": "normal"
}`

func TestRecommendationEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{})

	resp, err := http.Post(ts.URL+"/api/v1/recommendation", "application/json", strings.NewReader(validRecommendationBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.RecommendationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "L", result.RecommendedSize)
	assert.Equal(t, models.ConfidencePerfect, result.Confidence)
	assert.NotEmpty(t, result.Analysis)
}

func TestRecommendationRejectsInvalidBody(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{{"},
		{"missing profile", `{"extractedSizes": {"M": {"waist": 76}}, "clothingType": "skirt"}`},
		{"non-positive measurement", `{
			"profile": {"height": 170, "weight": 70, "chest": 95, "waist": 0, "hip": 100},
			"extractedSizes": {"M": {"waist": 76}},
			"clothingType": "skirt"
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/recommendation", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRecommendationEmptyChart(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{})

	body := `{
		"profile": {"height": 170, "weight": 70, "chest": 95, "waist": 80, "hip": 100},
		"extractedSizes": {"M": {"garmentLength": 70}},
		"clothingType": "skirt"
	}`

	resp, err := http.Post(ts.URL+"/api/v1/recommendation", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "EMPTY_CHART", payload["code"])
}

func TestAnalysisSubmitAndPoll(t *testing.T) {
	ext := &stubExtractor{result: &extraction.Result{
		ExtractedSizes: models.RawSizeChart{
			"M": {"waist": 80.0, "hip": 100.0},
		},
	}}
	ts := newTestServer(t, ext)

	body := `{
		"imageBase64": "aW1hZ2U=",
		"profile": {"height": 170, "weight": 70, "chest": 95, "waist": 80, "hip": 100},
		"clothingType": "skirt",
		"fabricType": "stretchy"
	}`

	resp, err := http.Post(ts.URL+"/api/v1/analysis", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var submitted struct {
		JobID  string `json:"jobId"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitted))
	require.NotEmpty(t, submitted.JobID)
	assert.Equal(t, "pending", submitted.Status)

	var job models.AnalysisJob
	require.Eventually(t, func() bool {
		pollResp, err := http.Get(ts.URL + "/api/v1/analysis/" + submitted.JobID)
		if err != nil {
			return false
		}
		defer pollResp.Body.Close()
		if pollResp.StatusCode != http.StatusOK {
			return false
		}
		if err := json.NewDecoder(pollResp.Body).Decode(&job); err != nil {
			return false
		}
		return job.Status.Terminal()
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, models.JobCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.NotNil(t, job.Result)
	assert.Equal(t, "M", job.Result.RecommendedSize)
}

func TestAnalysisUnknownJob(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{})

	resp, err := http.Get(ts.URL + "/api/v1/analysis/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalysisDuplicateJobID(t *testing.T) {
	ext := &stubExtractor{result: &extraction.Result{
		ExtractedSizes: models.RawSizeChart{"M": {"waist": 80.0, "hip": 100.0}},
	}}
	ts := newTestServer(t, ext)

	body := `{
		"jobId": "fixed-id",
		"imageBase64": "aW1hZ2U=",
		"profile": {"height": 170, "weight": 70, "chest": 95, "waist": 80, "hip": 100},
		"clothingType": "skirt"
	}`

	first, err := http.Post(ts.URL+"/api/v1/analysis", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	first.Body.Close()
	require.Equal(t, http.StatusAccepted, first.StatusCode)

	second, err := http.Post(ts.URL+"/api/v1/analysis", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
