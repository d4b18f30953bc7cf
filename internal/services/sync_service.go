package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skucraft/internal/repo"
	"skucraft/internal/sku"
	"skucraft/internal/sync"
	"skucraft/pkg/models"
)

// ProgressPublisher receives sync run progress snapshots for live display.
type ProgressPublisher interface {
	Publish(progress models.SyncRunProgress)
}

// SyncService runs SKU synchronization attempts: it validates the rules,
// builds the payload, picks the direct or bulk path by selection size, and
// tracks every attempt as a SyncRun record.
type SyncService struct {
	runRepo      *repo.SyncRunRepository
	orchestrator *sync.Orchestrator
	archive      *ArchiveService // nil when S3 is not configured
	progress     ProgressPublisher
	bg           context.Context
}

// NewSyncService creates a new sync service
func NewSyncService(runRepo *repo.SyncRunRepository, orchestrator *sync.Orchestrator, archive *ArchiveService) *SyncService {
	return &SyncService{
		runRepo:      runRepo,
		orchestrator: orchestrator,
		archive:      archive,
		bg:           context.Background(),
	}
}

// SetProgress attaches the publisher progress snapshots go to.
func (s *SyncService) SetProgress(progress ProgressPublisher) {
	s.progress = progress
}

// Start hands the service the lifecycle context its background observers
// run under; cancelling it stops polling without touching remote jobs.
func (s *SyncService) Start(ctx context.Context) {
	s.bg = ctx
}

// StartResult is what a sync request returns immediately: the run record,
// and the complete summary when the direct path finished inline.
type StartResult struct {
	Run     *models.SyncRun     `json:"run"`
	Summary *models.SyncSummary `json:"summary,omitempty"`
}

// StartSync validates and applies one synchronization attempt. Selections at
// or below the inline limit are applied before returning; larger ones are
// submitted as a bulk job observed in the background.
func (s *SyncService) StartSync(ctx context.Context, rules models.GeneratorRules, variants []models.ProductVariant) (*StartResult, error) {
	if err := sku.ValidateRules(rules); err != nil {
		return nil, err
	}

	descriptors, err := sync.BuildPayload(rules, variants)
	if err != nil {
		return nil, err
	}

	if sync.VariantCount(descriptors) <= sync.InlineVariantLimit {
		return s.runDirect(ctx, descriptors)
	}
	return s.runBulk(ctx, descriptors)
}

func (s *SyncService) runDirect(ctx context.Context, descriptors []models.UpdateDescriptor) (*StartResult, error) {
	run := &models.SyncRun{
		Mode:         models.SyncRunModeDirect,
		Status:       models.SyncRunStatusRunning,
		ProductCount: len(descriptors),
		VariantCount: sync.VariantCount(descriptors),
	}
	now := time.Now()
	run.StartedAt = &now
	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}
	s.publish(run, nil, "applying updates")

	summary := s.orchestrator.ExecuteDirect(ctx, descriptors)
	s.finishRun(run, &summary, "")

	return &StartResult{Run: run, Summary: &summary}, nil
}

func (s *SyncService) runBulk(ctx context.Context, descriptors []models.UpdateDescriptor) (*StartResult, error) {
	run := &models.SyncRun{
		Mode:         models.SyncRunModeBulk,
		Status:       models.SyncRunStatusUploading,
		ProductCount: len(descriptors),
		VariantCount: sync.VariantCount(descriptors),
	}
	now := time.Now()
	run.StartedAt = &now
	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}
	s.publish(run, nil, "uploading batch")

	submitted, err := s.orchestrator.SubmitBulk(ctx, descriptors)
	if err != nil {
		s.failRun(run, err)
		return nil, err
	}

	run.Status = models.SyncRunStatusRunning
	run.BulkJobID = submitted.Job.ID
	if s.archive != nil {
		if key, archiveErr := s.archive.ArchiveBatch(run.ID.String(), submitted.Batch); archiveErr != nil {
			log.Warn().Err(archiveErr).Str("run_id", run.ID.String()).Msg("Batch archival failed")
		} else {
			run.ArchiveKey = key
		}
	}
	if err := s.runRepo.Update(run); err != nil {
		log.Error().Err(err).Str("run_id", run.ID.String()).Msg("Failed to update sync run")
	}
	s.publish(run, nil, "bulk job running")

	go s.observe(run.ID, submitted.Job.ID)

	return &StartResult{Run: run}, nil
}

// observe follows a bulk job to completion in the background and settles the
// run record with the reconciled summary.
func (s *SyncService) observe(runID uuid.UUID, jobID string) {
	summary, job, err := s.orchestrator.Observe(s.bg, jobID)
	if s.bg.Err() != nil {
		// Shutdown: the remote job keeps running and will be adopted on the
		// next launch via the current-job query.
		log.Info().Str("job_id", jobID).Msg("Stopped observing bulk job")
		return
	}

	run, repoErr := s.runRepo.GetByID(runID)
	if repoErr != nil {
		log.Error().Err(repoErr).Str("run_id", runID.String()).Msg("Failed to load sync run")
		return
	}
	if job != nil && run.BulkJobID == "" {
		run.BulkJobID = job.ID
	}

	if err != nil {
		run.UnparsableLines = summary.UnparsableLines
		run.TotalRecords = summary.Total
		run.SuccessRecords = summary.Successful
		run.FailedRecords = summary.Failed
		s.failRun(run, err)
		return
	}
	s.finishRun(run, &summary, "")
}

// AdoptCurrent discovers a job left running by a previous process and
// resumes observing it instead of resubmitting. Called once at startup.
func (s *SyncService) AdoptCurrent(ctx context.Context) error {
	job, err := s.orchestrator.Current(ctx)
	if err != nil {
		return err
	}
	if job == nil || job.Status.Terminal() {
		return nil
	}

	run, err := s.runRepo.GetByBulkJobID(job.ID)
	if err != nil {
		return err
	}
	if run == nil {
		run = &models.SyncRun{
			Mode:      models.SyncRunModeBulk,
			Status:    models.SyncRunStatusRunning,
			BulkJobID: job.ID,
		}
		if err := s.runRepo.Create(run); err != nil {
			return err
		}
	} else if run.Status != models.SyncRunStatusRunning {
		run.Status = models.SyncRunStatusRunning
		if err := s.runRepo.Update(run); err != nil {
			return err
		}
	}

	log.Info().Str("job_id", job.ID).Str("run_id", run.ID.String()).Msg("Adopted outstanding bulk job")
	go s.observe(run.ID, job.ID)
	return nil
}

// GetRun returns one sync run.
func (s *SyncService) GetRun(id uuid.UUID) (*models.SyncRun, error) {
	return s.runRepo.GetByID(id)
}

// ListRuns returns recent sync runs.
func (s *SyncService) ListRuns(limit int) ([]models.SyncRun, error) {
	return s.runRepo.List(limit)
}

func (s *SyncService) finishRun(run *models.SyncRun, summary *models.SyncSummary, message string) {
	now := time.Now()
	run.CompletedAt = &now
	run.Status = models.SyncRunStatusCompleted
	run.TotalRecords = summary.Total
	run.SuccessRecords = summary.Successful
	run.FailedRecords = summary.Failed
	run.UnparsableLines = summary.UnparsableLines
	if summary.Failed > 0 && summary.Successful == 0 {
		run.Status = models.SyncRunStatusFailed
	}
	if err := s.runRepo.Update(run); err != nil {
		log.Error().Err(err).Str("run_id", run.ID.String()).Msg("Failed to update sync run")
	}
	s.publish(run, summary, message)
}

func (s *SyncService) failRun(run *models.SyncRun, cause error) {
	now := time.Now()
	run.CompletedAt = &now
	run.Status = models.SyncRunStatusFailed
	run.ErrorMessage = cause.Error()
	if err := s.runRepo.Update(run); err != nil {
		log.Error().Err(err).Str("run_id", run.ID.String()).Msg("Failed to update sync run")
	}
	s.publish(run, nil, cause.Error())
}

func (s *SyncService) publish(run *models.SyncRun, summary *models.SyncSummary, message string) {
	if s.progress == nil {
		return
	}
	s.progress.Publish(models.SyncRunProgress{
		RunID:        run.ID,
		Mode:         run.Mode,
		Status:       run.Status,
		BulkJobID:    run.BulkJobID,
		VariantCount: run.VariantCount,
		Summary:      summary,
		Message:      message,
	})
}
