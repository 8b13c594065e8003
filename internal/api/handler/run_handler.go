package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"ocr-batch-pipeline/internal/model"
	"ocr-batch-pipeline/internal/pipeline"
	"ocr-batch-pipeline/internal/recognize"
	"ocr-batch-pipeline/internal/store"
	"ocr-batch-pipeline/pkg/utils"
)

const runPrefix = "/api/v1/runs/"

// runIDFromPath extracts the run ID between the runs prefix and an optional
// trailing suffix like "/errors".
func runIDFromPath(path, suffix string) (string, bool) {
	if !strings.HasPrefix(path, runPrefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	runID := path[len(runPrefix) : len(path)-len(suffix)]
	return runID, runID != ""
}

// CreateRun creates and starts a new batch OCR run
// @Summary Create a new OCR run
// @Description Create and start a new batch OCR run with the provided configuration
// @Tags runs
// @Accept json
// @Produce json
// @Param run body model.RunSpec true "Run configuration"
// @Success 200 {object} map[string]interface{} "Run created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	spec := model.DefaultRunSpec()
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if spec.InputRoot == "" {
		http.Error(w, "inputRoot is required", http.StatusBadRequest)
		return
	}
	if spec.Recognizer.Endpoint == "" {
		http.Error(w, "recognizer.endpoint is required", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()

	// API-created runs without an explicit output root get a per-run
	// directory under outputs/, with the error log and completion flag
	// scoped to that run.
	if spec.OutputRoot == "" {
		om := utils.NewOutputManager("outputs")
		runDir, err := om.CreateRunDir(runID)
		if err != nil {
			http.Error(w, "Failed to create output directory", http.StatusInternalServerError)
			return
		}
		spec.OutputRoot = runDir
		spec.ErrorLog = om.ErrorLogPath(runID)
		spec.CompletionFlag = om.CompletionFlagPath(runID)
	}

	if err := store.SaveRun(runID, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	recognizer := recognize.NewHTTPRecognizer(
		spec.Recognizer.Endpoint,
		spec.Recognizer.APIKey,
		spec.Recognizer.Language,
		utils.ParseDuration(spec.Recognizer.Timeout, 90*time.Second),
	)
	orch := pipeline.NewOrchestrator(spec, recognizer)

	go func() {
		if _, err := orch.Run(context.Background(), runID); err != nil {
			fmt.Printf("❌ Run %s failed: %v\n", runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Run created successfully!",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListRuns retrieves all OCR runs
// @Summary List all runs
// @Description Get a list of all OCR runs with their current status
// @Tags runs
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves a specific OCR run
// @Summary Get run
// @Description Retrieve details of a specific OCR run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunErrors retrieves recorded item failures for a run
// @Summary Get run errors
// @Description Retrieve all item failures recorded during a run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "/errors")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	errors, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": errors,
		"count":  len(errors),
	})
}

// GetRunBatches retrieves the batch history for a run
// @Summary Get run batch history
// @Description Retrieve recorded batch outcomes and rate adjustments for a run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Batch history"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/batches [get]
func GetRunBatches(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "/batches")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	batches, err := store.GetBatchHistory(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve batch history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":  runID,
		"batches": batches,
		"count":   len(batches),
	})
}

// GetRunSummary retrieves the final summary of a run
// @Summary Get run summary
// @Description Retrieve the final summary of a completed run
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run summary"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run or summary not found"
// @Router /runs/{id}/summary [get]
func GetRunSummary(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "/summary")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	summary, ok := run["summary"]
	if !ok {
		http.Error(w, "Run has no summary yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
