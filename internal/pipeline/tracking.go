package pipeline

import (
	"fmt"
	"os"
	"sync"
	"time"

	"ocr-batch-pipeline/internal/model"
)

// RunTracker collects run statistics and the append-only error record. All
// counters are guarded by one mutex; the tracker is the single aggregation
// point failures report into, so no failure ever has to abort a sibling.
type RunTracker struct {
	RunID     string
	StartTime time.Time

	mu         sync.Mutex
	total      int
	succeeded  int
	failed     int
	batchesRun int
	errors     []model.ItemError
}

// NewRunTracker starts tracking a run over the given item count.
func NewRunTracker(runID string, totalItems int) *RunTracker {
	return &RunTracker{
		RunID:     runID,
		StartTime: time.Now(),
		total:     totalItems,
	}
}

// Record folds one item's immutable outcome into the run counters. Failed
// outcomes carry their classified error into the error record.
func (t *RunTracker) Record(res model.ProcessingResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if res.Success {
		t.succeeded++
		return
	}

	message := ""
	if res.Err != nil {
		message = res.Err.Message
		if res.Err.IsRateLimited {
			message += " (rate limited)"
		}
	}
	t.failed++
	t.errors = append(t.errors, model.ItemError{
		InputPath: res.Item.InputPath,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// BatchCompleted records one drained batch and prints its outcome.
func (t *RunTracker) BatchCompleted(outcome model.BatchOutcome) {
	t.mu.Lock()
	t.batchesRun++
	done := t.succeeded + t.failed
	total := t.total
	t.mu.Unlock()

	fmt.Printf("📦 Batch %d complete: success rate %.2f (size %d), %d/%d items done\n",
		outcome.BatchNumber, outcome.SuccessRate, outcome.BatchSize, done, total)
}

// Errors returns a copy of the recorded item errors.
func (t *RunTracker) Errors() []model.ItemError {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.ItemError, len(t.errors))
	copy(out, t.errors)
	return out
}

// Summary produces the final run report.
func (t *RunTracker) Summary(state model.RateState, adaptive bool, mergedArtifacts int) model.RunSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	duration := time.Since(t.StartTime)
	summary := model.RunSummary{
		RunID:           t.RunID,
		TotalItems:      t.total,
		Succeeded:       t.succeeded,
		Failed:          t.failed,
		Duration:        duration,
		BatchesRun:      t.batchesRun,
		Adaptive:        adaptive,
		AdjustmentCount: state.AdjustmentCount,
		FinalBatchSize:  state.CurrentBatchSize,
		FinalBatchDelay: state.CurrentBatchDelay,
		MergedArtifacts: mergedArtifacts,
	}
	processed := t.succeeded + t.failed
	if processed > 0 {
		summary.SuccessRate = float64(t.succeeded) / float64(processed)
		summary.AvgPerItem = duration / time.Duration(processed)
	}
	return summary
}

// WriteErrorLog appends every recorded failure to the error log file, one
// line per item.
func (t *RunTracker) WriteErrorLog(path string) error {
	errs := t.Errors()
	if len(errs) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open error log %s: %w", path, err)
	}
	defer f.Close()

	for _, e := range errs {
		line := fmt.Sprintf("%s\t%s\t%s\n", e.Timestamp.Format(time.RFC3339), e.InputPath, e.Message)
		if _, err := f.WriteString(line); err != nil {
			return fmt.Errorf("failed to append to error log: %w", err)
		}
	}
	return nil
}

// PrintSummary writes the human-readable run report.
func PrintSummary(s model.RunSummary) {
	fmt.Printf("\n🏁 Run %s finished in %v\n", s.RunID, s.Duration.Round(time.Millisecond))
	fmt.Printf("   Items: %d total, %d succeeded, %d failed (%.1f%% success)\n",
		s.TotalItems, s.Succeeded, s.Failed, s.SuccessRate*100)
	fmt.Printf("   Batches: %d, average per item: %v\n", s.BatchesRun, s.AvgPerItem.Round(time.Millisecond))
	if s.Adaptive {
		fmt.Printf("   Rate control: %d adjustments, final batch size %d, final delay %v\n",
			s.AdjustmentCount, s.FinalBatchSize, s.FinalBatchDelay)
	}
	if s.MergedArtifacts > 0 {
		fmt.Printf("   Merged artifacts: %d\n", s.MergedArtifacts)
	}
}
