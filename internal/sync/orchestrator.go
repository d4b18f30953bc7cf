package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"skucraft/internal/platform"
	"skucraft/pkg/models"
)

// InlineVariantLimit is the largest per-product variant count the platform
// will process with synchronous mutation semantics. Batches above it switch
// to the asynchronous mutation template; selections above it take the bulk
// path instead of the direct one. One constant so the two decisions cannot
// drift apart.
const InlineVariantLimit = 100

// DefaultPollInterval is how often a running bulk job is observed.
const DefaultPollInterval = 3 * time.Second

// ErrJobConflict is returned when the platform already has a job in flight.
// The caller should observe the existing job instead of retrying; the
// platform enforces one job per account, so the check-then-submit race
// resolves to this same error on the platform side.
var ErrJobConflict = errors.New("a bulk job is already running")

// ErrJobCanceled is returned when the remote job was canceled; the run is
// terminal and not retriable as-is.
var ErrJobCanceled = errors.New("bulk job was canceled")

// PlatformAPI is the slice of the platform client the orchestrator needs.
type PlatformAPI interface {
	CurrentBulkJob(ctx context.Context) (*models.BulkJob, error)
	CreateStagedUpload(ctx context.Context, filename string) (*platform.StagedUploadTarget, error)
	UploadBatch(ctx context.Context, target *platform.StagedUploadTarget, content []byte, filename string) error
	SubmitBulkMutation(ctx context.Context, mutationTemplate, stagedUploadPath string) (*models.BulkJob, error)
	GetBulkJob(ctx context.Context, jobID string) (*models.BulkJob, error)
	FetchRaw(ctx context.Context, url string) ([]byte, error)
	ProductSetDirect(ctx context.Context, input platform.ProductSetInput) ([]platform.UserError, error)
}

// Orchestrator drives one synchronization attempt against the platform,
// either inline (direct path) or through the staged-upload bulk machinery.
// It only observes job state; all transitions happen remotely.
type Orchestrator struct {
	api          PlatformAPI
	pollInterval time.Duration
}

// NewOrchestrator builds an orchestrator with the default poll interval.
func NewOrchestrator(api PlatformAPI) *Orchestrator {
	return &Orchestrator{api: api, pollInterval: DefaultPollInterval}
}

// Submitted describes a bulk job accepted by the platform, handed back to
// the caller before polling begins.
type Submitted struct {
	Job      *models.BulkJob
	Batch    []byte
	Filename string
}

// SubmitBulk serializes the descriptors, uploads the batch and starts the
// bulk job. It returns ErrJobConflict without touching the platform further
// when a job is already outstanding; upload or submission failures abort
// before any remote mutation, so nothing is partially applied.
func (o *Orchestrator) SubmitBulk(ctx context.Context, descriptors []models.UpdateDescriptor) (*Submitted, error) {
	current, err := o.api.CurrentBulkJob(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for outstanding bulk job: %w", err)
	}
	if current != nil && !current.Status.Terminal() {
		return nil, fmt.Errorf("%w: job %s is %s", ErrJobConflict, current.ID, current.Status)
	}

	batch, err := SerializeBatch(descriptors)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("sku-sync-%d.jsonl", time.Now().Unix())
	target, err := o.api.CreateStagedUpload(ctx, filename)
	if err != nil {
		return nil, err
	}
	if err := o.api.UploadBatch(ctx, target, batch, filename); err != nil {
		return nil, err
	}

	template := platform.SyncProductSetTemplate
	if largestGroup(descriptors) > InlineVariantLimit {
		template = platform.AsyncProductSetTemplate
	}

	job, err := o.api.SubmitBulkMutation(ctx, template, target.ResourceURL)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("job_id", job.ID).
		Str("status", string(job.Status)).
		Int("products", len(descriptors)).
		Msg("Bulk job submitted")

	return &Submitted{Job: job, Batch: batch, Filename: filename}, nil
}

// Current returns the platform's outstanding bulk job, nil when idle.
func (o *Orchestrator) Current(ctx context.Context) (*models.BulkJob, error) {
	return o.api.CurrentBulkJob(ctx)
}

// Observe polls the job until it reaches a terminal state, then reconciles
// its result stream. It works for jobs this process submitted and for
// orphaned jobs rediscovered through the current-job query; stopping the
// context stops polling but never the remote job.
func (o *Orchestrator) Observe(ctx context.Context, jobID string) (models.SyncSummary, *models.BulkJob, error) {
	job, err := o.waitTerminal(ctx, jobID)
	if err != nil {
		return models.SyncSummary{Outcome: models.OutcomeNotStarted}, nil, err
	}

	switch job.Status {
	case models.BulkJobCompleted:
		return o.reconcileCompleted(ctx, job)
	case models.BulkJobFailed:
		return o.reconcileFailed(ctx, job)
	case models.BulkJobCanceled:
		return models.SyncSummary{Outcome: models.OutcomeNotStarted}, job, ErrJobCanceled
	}
	return models.SyncSummary{Outcome: models.OutcomeNotStarted}, job, fmt.Errorf("bulk job %s ended in unexpected status %s", job.ID, job.Status)
}

func (o *Orchestrator) waitTerminal(ctx context.Context, jobID string) (*models.BulkJob, error) {
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		job, err := o.api.GetBulkJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}

		log.Debug().Str("job_id", jobID).Str("status", string(job.Status)).Msg("Bulk job still running")

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (o *Orchestrator) reconcileCompleted(ctx context.Context, job *models.BulkJob) (models.SyncSummary, *models.BulkJob, error) {
	if job.ResultURL == "" {
		// Completed with nothing to report; an empty batch does this.
		return models.SyncSummary{Outcome: models.OutcomeApplied, SuccessRate: successRate(0, 0)}, job, nil
	}

	stream, err := o.api.FetchRaw(ctx, job.ResultURL)
	if err != nil {
		return models.SyncSummary{Outcome: models.OutcomeApplied}, job, fmt.Errorf("failed to fetch bulk results: %w", err)
	}
	return Reconcile(stream), job, nil
}

func (o *Orchestrator) reconcileFailed(ctx context.Context, job *models.BulkJob) (models.SyncSummary, *models.BulkJob, error) {
	err := fmt.Errorf("bulk job %s failed with code %s", job.ID, job.ErrorCode)

	if job.PartialDataURL == "" {
		return models.SyncSummary{Outcome: models.OutcomeNotStarted}, job, err
	}

	// Partial results are diagnostics: expose what was applied before the
	// failure so the operator can reconcile manually.
	stream, fetchErr := o.api.FetchRaw(ctx, job.PartialDataURL)
	if fetchErr != nil {
		log.Warn().Err(fetchErr).Str("job_id", job.ID).Msg("Failed to fetch partial results")
		return models.SyncSummary{Outcome: models.OutcomePartial}, job, err
	}

	summary := Reconcile(stream)
	summary.Outcome = models.OutcomePartial
	return summary, job, err
}

// largestGroup returns the biggest per-product variant count in the batch.
func largestGroup(descriptors []models.UpdateDescriptor) int {
	largest := 0
	for _, descriptor := range descriptors {
		if n := len(descriptor.Variants); n > largest {
			largest = n
		}
	}
	return largest
}

// VariantCount totals the variants across all descriptors.
func VariantCount(descriptors []models.UpdateDescriptor) int {
	total := 0
	for _, descriptor := range descriptors {
		total += len(descriptor.Variants)
	}
	return total
}
