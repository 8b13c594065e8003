package model

import "time"

// BatchOutcome records one completed batch. Appended once, never mutated;
// consumed only for trailing-window averages.
type BatchOutcome struct {
	BatchNumber int           `json:"batch_number"`
	SuccessRate float64       `json:"success_rate"`
	BatchSize   int           `json:"batch_size"`
	BatchDelay  time.Duration `json:"batch_delay"`
}

// RateState is the adaptive controller's working state. It has exactly one
// writer (the batch orchestrator, between batches) and lives for one run.
type RateState struct {
	CurrentBatchSize  int            `json:"current_batch_size"`
	CurrentBatchDelay time.Duration  `json:"current_batch_delay"`
	History           []BatchOutcome `json:"history"`
	AdjustmentCount   int            `json:"adjustment_count"`
}
