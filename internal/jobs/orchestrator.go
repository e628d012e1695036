// Package jobs implements the asynchronous analysis job orchestrator: an
// in-memory registry of extraction-then-scoring runs with progress
// checkpoints and a periodic retention sweep.
package jobs

import (
	"context"
	goerrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sizefit-engine/internal/common/errors"
	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/common/metrics"
	"sizefit-engine/internal/common/observability"
	"sizefit-engine/internal/extraction"
	"sizefit-engine/internal/fitting/normalize"
	"sizefit-engine/internal/fitting/scoring"
	"sizefit-engine/internal/models"
)

// Progress checkpoints reported through the job record. Values between
// checkpoints are never emitted.
const (
	progressQueued     = 0
	progressStarted    = 10
	progressExtracting = 30
	progressDone       = 100
)

// Settings controls job retention. Zero values fall back to the defaults.
type Settings struct {
	SweepInterval time.Duration
	JobMaxAge     time.Duration
}

const (
	defaultSweepInterval = 10 * time.Minute
	defaultJobMaxAge     = 30 * time.Minute
)

// Orchestrator runs analysis jobs and tracks their lifecycle in memory.
// Records are ephemeral: a restart loses all jobs, and the retention sweep
// evicts records older than JobMaxAge regardless of state.
type Orchestrator struct {
	extractor extraction.Extractor
	engine    *scoring.Engine
	logger    logger.Logger
	obs       *observability.Observability
	settings  Settings

	mu     sync.Mutex
	jobs   map[string]*models.AnalysisJob
	inputs map[string]*extraction.Request

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates an Orchestrator and starts its retention sweep loop. Call
// Close to stop the loop and wait for in-flight jobs.
func New(
	extractor extraction.Extractor,
	engine *scoring.Engine,
	log logger.Logger,
	obs *observability.Observability,
	settings Settings,
) *Orchestrator {
	if settings.SweepInterval <= 0 {
		settings.SweepInterval = defaultSweepInterval
	}
	if settings.JobMaxAge <= 0 {
		settings.JobMaxAge = defaultJobMaxAge
	}

	o := &Orchestrator{
		extractor: extractor,
		engine:    engine,
		logger:    log.WithFields(map[string]interface{}{"component": "jobs"}),
		obs:       obs,
		settings:  settings,
		jobs:      make(map[string]*models.AnalysisJob),
		inputs:    make(map[string]*extraction.Request),
		done:      make(chan struct{}),
	}

	o.wg.Add(1)
	go o.sweepLoop()

	return o
}

// Submit registers a new analysis job and starts processing it in the
// background. An empty jobID gets a generated one; reusing a live jobID is
// rejected so a retried submission cannot clobber a running job.
func (o *Orchestrator) Submit(jobID string, req *extraction.Request) (string, error) {
	if jobID == "" {
		jobID = uuid.NewString()
	}

	now := time.Now().UTC()

	o.mu.Lock()
	if _, exists := o.jobs[jobID]; exists {
		o.mu.Unlock()
		return "", errors.NewDuplicateJobError(jobID)
	}
	o.jobs[jobID] = &models.AnalysisJob{
		ID:        jobID,
		Status:    models.JobPending,
		Progress:  progressQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.inputs[jobID] = req
	o.mu.Unlock()

	o.logger.Info("analysis job submitted", map[string]interface{}{
		"jobId":        jobID,
		"clothingType": req.ClothingType,
		"fabricType":   req.FabricType,
	})

	o.wg.Add(1)
	go o.process(jobID)

	return jobID, nil
}

// Get returns a snapshot of the job record. The returned value is a copy;
// mutating it does not affect the registry.
func (o *Orchestrator) Get(jobID string) (models.AnalysisJob, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[jobID]
	if !ok {
		return models.AnalysisJob{}, errors.NewJobNotFoundError(jobID)
	}
	return *job, nil
}

// process runs one job end to end: extract the chart, normalize it, score
// it, and record the outcome. Any error moves the job to failed; the
// orchestrator never retries.
func (o *Orchestrator) process(jobID string) {
	defer o.wg.Done()

	start := time.Now()
	ctx := context.Background()

	metrics.AnalysisJobsActive.Inc()
	defer metrics.AnalysisJobsActive.Dec()

	req := o.takeInput(jobID)
	if req == nil {
		// Evicted between submission and pickup; nothing to do.
		return
	}

	o.update(jobID, func(job *models.AnalysisJob) {
		job.Status = models.JobProcessing
		job.Progress = progressStarted
	})

	// Extraction dominates job latency; advance the checkpoint before
	// awaiting the call so pollers can observe the phase.
	o.update(jobID, func(job *models.AnalysisJob) {
		job.Progress = progressExtracting
	})

	extracted, err := o.extractor.ExtractSizeChart(ctx, req)
	if err != nil {
		o.fail(jobID, err, start)
		return
	}

	chart := normalize.Chart(extracted.ExtractedSizes)
	if issues := normalize.CheckProgression(chart); len(issues) > 0 {
		o.logger.Warn("extracted chart has irregular size progression", map[string]interface{}{
			"jobId":  jobID,
			"issues": issues,
		})
	}

	recommendation, err := o.engine.Recommend(req.Profile, chart, req.ClothingType, req.FabricType)
	if err != nil {
		o.fail(jobID, err, start)
		return
	}

	result := &models.AnalysisResult{
		RecommendationResult: *recommendation,
		ProfileID:            req.Profile.ID,
		ClothingType:         req.ClothingType,
		FabricType:           string(req.FabricType),
	}
	if extracted.Analysis != "" {
		result.Analysis = recommendation.Analysis + "\n\n**Chart Extraction Notes:** " + extracted.Analysis
	}

	o.update(jobID, func(job *models.AnalysisJob) {
		job.Status = models.JobCompleted
		job.Progress = progressDone
		job.Result = result
	})

	duration := time.Since(start)
	metrics.AnalysisJobsCompleted.Inc()
	metrics.AnalysisJobDuration.Observe(duration.Seconds())
	o.obs.RecordJobProcessed(ctx, "completed")
	o.obs.RecordJobDuration(ctx, duration, "completed")

	o.logger.Info("analysis job completed", map[string]interface{}{
		"jobId":           jobID,
		"recommendedSize": recommendation.RecommendedSize,
		"confidence":      recommendation.Confidence,
		"durationMs":      duration.Milliseconds(),
	})
}

func (o *Orchestrator) fail(jobID string, err error, start time.Time) {
	code := "INTERNAL"
	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) {
		code = string(stdErr.Code)
	}

	o.update(jobID, func(job *models.AnalysisJob) {
		job.Status = models.JobFailed
		job.Error = err.Error()
	})

	duration := time.Since(start)
	metrics.AnalysisJobsFailed.WithLabelValues(code).Inc()
	metrics.AnalysisJobDuration.Observe(duration.Seconds())
	o.obs.RecordJobProcessed(context.Background(), "failed")
	o.obs.RecordJobDuration(context.Background(), duration, "failed")

	o.logger.WithError(err).Error("analysis job failed", map[string]interface{}{
		"jobId":      jobID,
		"errorCode":  code,
		"durationMs": duration.Milliseconds(),
	})
}

// update applies fn to the job record under the lock and releases the
// input payload once the job reaches a terminal state.
func (o *Orchestrator) update(jobID string, fn func(*models.AnalysisJob)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[jobID]
	if !ok {
		return
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()

	if job.Status.Terminal() {
		delete(o.inputs, jobID)
	}
}

func (o *Orchestrator) takeInput(jobID string) *extraction.Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inputs[jobID]
}

func (o *Orchestrator) sweepLoop() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.settings.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.done:
			return
		case now := <-ticker.C:
			o.sweepOnce(now)
		}
	}
}

// sweepOnce evicts every job record older than JobMaxAge, terminal or not.
// A still-running job whose record was evicted finishes silently: its
// update calls find no record.
func (o *Orchestrator) sweepOnce(now time.Time) int {
	cutoff := now.Add(-o.settings.JobMaxAge)

	o.mu.Lock()
	var evicted []string
	for id, job := range o.jobs {
		if job.CreatedAt.Before(cutoff) {
			evicted = append(evicted, id)
		}
	}
	for _, id := range evicted {
		delete(o.jobs, id)
		delete(o.inputs, id)
	}
	remaining := len(o.jobs)
	o.mu.Unlock()

	if len(evicted) > 0 {
		metrics.AnalysisJobsEvicted.Add(float64(len(evicted)))
		o.logger.Info("retention sweep evicted jobs", map[string]interface{}{
			"evicted":   len(evicted),
			"remaining": remaining,
		})
	}

	return len(evicted)
}

// Close stops the sweep loop and waits for in-flight jobs to finish.
func (o *Orchestrator) Close() {
	close(o.done)
	o.wg.Wait()
}

// Len reports the number of job records currently held.
func (o *Orchestrator) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.jobs)
}
