package model

import "time"

// RunSummary is the final report for one batch OCR run.
type RunSummary struct {
	RunID           string        `json:"run_id"`
	TotalItems      int           `json:"total_items"`
	Succeeded       int           `json:"succeeded"`
	Failed          int           `json:"failed"`
	SuccessRate     float64       `json:"success_rate"`
	Duration        time.Duration `json:"duration"`
	AvgPerItem      time.Duration `json:"avg_per_item"`
	BatchesRun      int           `json:"batches_run"`
	Adaptive        bool          `json:"adaptive"`
	AdjustmentCount int           `json:"adjustment_count"`
	FinalBatchSize  int           `json:"final_batch_size"`
	FinalBatchDelay time.Duration `json:"final_batch_delay"`
	MergedArtifacts int           `json:"merged_artifacts"`
}

// ItemError is one permanently failed item, as recorded in the error log.
type ItemError struct {
	InputPath string    `json:"input_path"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
