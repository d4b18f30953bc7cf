package models

import (
	"time"

	"github.com/google/uuid"
)

// BulkJobStatus mirrors the platform-side state of an asynchronous bulk job.
// Transitions are driven entirely by the platform; we only observe them.
type BulkJobStatus string

const (
	BulkJobCreated   BulkJobStatus = "CREATED"
	BulkJobRunning   BulkJobStatus = "RUNNING"
	BulkJobCompleted BulkJobStatus = "COMPLETED"
	BulkJobFailed    BulkJobStatus = "FAILED"
	BulkJobCanceled  BulkJobStatus = "CANCELED"
)

// Terminal reports whether the job has reached a final state.
func (s BulkJobStatus) Terminal() bool {
	return s == BulkJobCompleted || s == BulkJobFailed || s == BulkJobCanceled
}

// BulkJob is the platform's view of one asynchronous bulk mutation.
type BulkJob struct {
	ID             string        `json:"id"`
	Status         BulkJobStatus `json:"status"`
	CreatedAt      string        `json:"created_at"`
	CompletedAt    string        `json:"completed_at,omitempty"`
	ObjectCount    string        `json:"object_count,omitempty"`
	FileSize       string        `json:"file_size,omitempty"`
	ResultURL      string        `json:"result_url,omitempty"`
	PartialDataURL string        `json:"partial_data_url,omitempty"`
	ErrorCode      string        `json:"error_code,omitempty"`
	Type           string        `json:"type,omitempty"`
}

// SyncRunStatus is the local lifecycle of one synchronization attempt.
type SyncRunStatus string

const (
	SyncRunStatusPending   SyncRunStatus = "pending"
	SyncRunStatusUploading SyncRunStatus = "uploading"
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusCompleted SyncRunStatus = "completed"
	SyncRunStatusFailed    SyncRunStatus = "failed"
)

// SyncRunMode records which execution path a run took.
type SyncRunMode string

const (
	SyncRunModeDirect SyncRunMode = "direct"
	SyncRunModeBulk   SyncRunMode = "bulk"
)

// SyncRun is the persisted record of one SKU synchronization attempt.
type SyncRun struct {
	BaseModel
	Mode            SyncRunMode   `gorm:"not null" json:"mode"`
	Status          SyncRunStatus `gorm:"not null;default:'pending'" json:"status"`
	BulkJobID       string        `gorm:"index" json:"bulk_job_id,omitempty"`
	ProductCount    int           `gorm:"default:0" json:"product_count"`
	VariantCount    int           `gorm:"default:0" json:"variant_count"`
	TotalRecords    int           `gorm:"default:0" json:"total_records"`
	SuccessRecords  int           `gorm:"default:0" json:"success_records"`
	FailedRecords   int           `gorm:"default:0" json:"failed_records"`
	UnparsableLines int           `gorm:"default:0" json:"unparsable_lines"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	ArchiveKey      string        `json:"archive_key,omitempty"`
	StartedAt       *time.Time    `json:"started_at"`
	CompletedAt     *time.Time    `json:"completed_at"`
}

// SyncOutcome classifies what, if anything, happened remotely, so callers can
// tell "nothing happened, retry safely" from "partially applied".
type SyncOutcome string

const (
	// OutcomeNotStarted means the attempt was rejected before any remote
	// mutation (validation or conflict or upload failure).
	OutcomeNotStarted SyncOutcome = "not_started"
	// OutcomeApplied means the platform executed the batch; per-record
	// failures, if any, are in the summary.
	OutcomeApplied SyncOutcome = "applied"
	// OutcomePartial means the platform failed mid-run but partial results
	// were recovered.
	OutcomePartial SyncOutcome = "partial"
)

// ParentResult is the outcome for a single parent product on the direct path.
type ParentResult struct {
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Variants     int    `json:"variants"`
	Error        string `json:"error,omitempty"`
}

// SyncSummary is the uniform result shape for both execution paths.
type SyncSummary struct {
	Outcome         SyncOutcome    `json:"outcome"`
	Total           int            `json:"total"`
	Successful      int            `json:"successful"`
	Failed          int            `json:"failed"`
	UnparsableLines int            `json:"unparsable_lines,omitempty"`
	SuccessRate     string         `json:"success_rate"`
	Errors          []string       `json:"errors,omitempty"`
	Parents         []ParentResult `json:"parents,omitempty"`
}

// SyncRunProgress is the snapshot pushed to progress subscribers.
type SyncRunProgress struct {
	RunID        uuid.UUID     `json:"run_id"`
	Mode         SyncRunMode   `json:"mode"`
	Status       SyncRunStatus `json:"status"`
	BulkJobID    string        `json:"bulk_job_id,omitempty"`
	VariantCount int           `json:"variant_count"`
	Summary      *SyncSummary  `json:"summary,omitempty"`
	Message      string        `json:"message,omitempty"`
}
