package app

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"skucraft/internal/platform"
	"skucraft/internal/repo"
	"skucraft/internal/services"
	"skucraft/internal/sync"
)

// Services holds all application services
type Services struct {
	DB           *gorm.DB
	Platform     *platform.Client
	SyncRunRepo  *repo.SyncRunRepository
	Orchestrator *sync.Orchestrator
	SyncService  *services.SyncService
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) (*Services, error) {
	platformClient, err := platform.NewClient()
	if err != nil {
		return nil, err
	}

	syncRunRepo := repo.NewSyncRunRepository(db)
	orchestrator := sync.NewOrchestrator(platformClient)

	// Archival is optional; without S3 configuration runs simply skip it.
	archive, err := services.NewArchiveService()
	if err != nil {
		log.Info().Msg("Batch archival disabled (no S3 configuration)")
		archive = nil
	}

	syncService := services.NewSyncService(syncRunRepo, orchestrator, archive)

	return &Services{
		DB:           db,
		Platform:     platformClient,
		SyncRunRepo:  syncRunRepo,
		Orchestrator: orchestrator,
		SyncService:  syncService,
	}, nil
}
