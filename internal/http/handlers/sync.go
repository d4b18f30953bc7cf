package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"skucraft/internal/services"
	"skucraft/internal/sku"
	"skucraft/internal/sync"
	"skucraft/pkg/models"
)

// SyncHandler starts synchronization attempts and reports their state.
type SyncHandler struct {
	syncService  *services.SyncService
	orchestrator *sync.Orchestrator
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *services.SyncService, orchestrator *sync.Orchestrator) *SyncHandler {
	return &SyncHandler{syncService: syncService, orchestrator: orchestrator}
}

// ApplyRequest carries everything one synchronization attempt needs.
type ApplyRequest struct {
	Rules    models.GeneratorRules   `json:"rules"`
	Variants []models.ProductVariant `json:"variants" validate:"required,min=1"`
}

// Apply starts a synchronization attempt
// @Summary Apply rendered SKUs to the selection
// @Description Small selections are applied inline; large ones are submitted as a bulk job and observed in the background.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body ApplyRequest true "Rules and selected variants"
// @Success 200 {object} services.StartResult
// @Success 202 {object} services.StartResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sync [post]
func (h *SyncHandler) Apply(c echo.Context) error {
	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.syncService.StartSync(c.Request().Context(), req.Rules, req.Variants)
	switch {
	case errors.Is(err, sku.ErrInvalidRules), errors.Is(err, sync.ErrMissingParent):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, sync.ErrJobConflict):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": err.Error(),
			"hint":  "wait for the running job to finish and check /sync/current-job",
		})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if result.Summary != nil {
		return c.JSON(http.StatusOK, result)
	}
	return c.JSON(http.StatusAccepted, result)
}

// ListRuns lists recent synchronization attempts
// @Summary List sync runs
// @Tags sync
// @Produce json
// @Param limit query int false "Max runs to return"
// @Success 200 {array} models.SyncRun
// @Failure 500 {object} map[string]string
// @Router /sync/runs [get]
func (h *SyncHandler) ListRuns(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	runs, err := h.syncService.ListRuns(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, runs)
}

// GetRun returns one synchronization attempt
// @Summary Get a sync run
// @Tags sync
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} models.SyncRun
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sync/runs/{id} [get]
func (h *SyncHandler) GetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid run id"})
	}

	run, err := h.syncService.GetRun(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "sync run not found"})
	}
	return c.JSON(http.StatusOK, run)
}

// CurrentJob reports the platform's outstanding bulk job
// @Summary Current bulk job
// @Description Proxies the platform's current-job query; null when no job is outstanding.
// @Tags sync
// @Produce json
// @Success 200 {object} models.BulkJob
// @Failure 502 {object} map[string]string
// @Router /sync/current-job [get]
func (h *SyncHandler) CurrentJob(c echo.Context) error {
	job, err := h.orchestrator.Current(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	if job == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"job": nil})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"job": job})
}
