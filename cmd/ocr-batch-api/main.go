package main

import (
	"flag"

	"ocr-batch-pipeline/internal/api"
	"ocr-batch-pipeline/internal/store"
	"ocr-batch-pipeline/pkg/router"
)

// @title OCR Batch Pipeline API
// @version 1.0
// @description Adaptive batch OCR pipeline: page images in, text artifacts out.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "ocr_runs.db", "sqlite database for run tracking")
	flag.Parse()

	// Init DB
	if err := store.InitDB(*dbPath); err != nil {
		panic(err)
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Start server
	r.Start(*addr)
}
