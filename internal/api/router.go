package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "ocr-batch-pipeline/docs"
	"ocr-batch-pipeline/internal/api/handler"
	"ocr-batch-pipeline/pkg/router"
)

// RegisterRoutes attaches the run API and the Swagger UI to the router.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/runs/*/batches", handler.GetRunBatches)
	r.GET("/api/v1/runs/*/summary", handler.GetRunSummary)
	// Generic run route last
	r.GET("/api/v1/runs/*", handler.GetRun)

	r.Mount("/swagger/", httpSwagger.WrapHandler)
}
