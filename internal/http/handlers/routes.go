package handlers

import (
	"github.com/labstack/echo/v4"

	"skucraft/internal/app"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	progressHub := NewProgressHub()
	services.SyncService.SetProgress(progressHub)

	rulesHandler := NewRulesHandler()
	rules := api.Group("/rules")
	rules.GET("/defaults", rulesHandler.GetDefaults)
	rules.POST("/validate", rulesHandler.Validate)
	rules.POST("/patch", rulesHandler.Patch)
	rules.POST("/preview", rulesHandler.Preview)

	productsHandler := NewProductsHandler(services.Platform)
	api.GET("/variants", productsHandler.List)
	api.POST("/variants/fetch", productsHandler.Fetch)

	syncHandler := NewSyncHandler(services.SyncService, services.Orchestrator)
	api.POST("/sync", syncHandler.Apply)
	api.GET("/sync/runs", syncHandler.ListRuns)
	api.GET("/sync/runs/:id", syncHandler.GetRun)
	api.GET("/sync/current-job", syncHandler.CurrentJob)
	api.GET("/sync/progress/ws", progressHub.Handle)
}
