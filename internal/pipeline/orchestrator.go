package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ocr-batch-pipeline/internal/model"
	"ocr-batch-pipeline/internal/recognize"
	"ocr-batch-pipeline/internal/store"
	"ocr-batch-pipeline/pkg/utils"
)

// Orchestrator drives one batch OCR run: discover, recognize in adaptively
// sized batches, assemble and write per-item artifacts, then merge per
// directory. The stage composition is fixed at construction; nothing is
// rewired mid-run.
type Orchestrator struct {
	Spec       model.RunSpec
	Recognizer recognize.Recognizer
	Rate       *RateController
	Retry      *RetryPolicy
	Assembler  *Assembler
	Merger     *Merger

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator wires the run stages from one RunSpec.
func NewOrchestrator(spec model.RunSpec, recognizer recognize.Recognizer) *Orchestrator {
	return &Orchestrator{
		Spec:       spec,
		Recognizer: recognizer,
		Rate:       NewRateController(spec.Rate),
		Retry:      NewRetryPolicy(spec.Retry),
		Assembler:  NewAssembler(spec.Assembly),
		Merger:     NewMerger(spec.Merge, spec.OutputEncoding),
		sleep:      sleepCtx,
	}
}

// Run executes the full pipeline for one run ID and returns its summary.
// Item failures never abort the run; only discovery errors, a cancelled
// context, or a failing merge stage do.
func (o *Orchestrator) Run(ctx context.Context, runID string) (model.RunSummary, error) {
	items, rejected, err := DiscoverWorkItems(o.Spec)
	if err != nil {
		_ = store.UpdateRunStatus(runID, "failed")
		return model.RunSummary{}, err
	}
	fmt.Printf("🔍 Discovered %d items under %s (%d rejected)\n", len(items), o.Spec.InputRoot, len(rejected))

	if err := os.MkdirAll(o.Spec.OutputRoot, 0755); err != nil {
		_ = store.UpdateRunStatus(runID, "failed")
		return model.RunSummary{}, fmt.Errorf("failed to create output root %s: %w", o.Spec.OutputRoot, err)
	}

	_ = store.UpdateRunStatus(runID, "running")

	tracker := NewRunTracker(runID, len(items)+len(rejected))
	for _, v := range rejected {
		tracker.Record(model.ProcessingResult{
			Item: &model.WorkItem{InputPath: v.Path, Status: model.StatusFailed},
			Err:  &model.ErrorInfo{Message: v.Reason},
		})
		_ = store.SaveRunError(runID, v.Path, v)
	}

	state := o.Rate.InitialState()
	batchNumber := 0
	for start := 0; start < len(items); {
		if err := ctx.Err(); err != nil {
			_ = store.UpdateRunStatus(runID, "cancelled")
			return tracker.Summary(state, o.Rate.Adaptive, 0), fmt.Errorf("run cancelled: %w", err)
		}

		end := start + state.CurrentBatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]
		batchNumber++

		result := o.runBatch(ctx, batch, tracker, runID)

		outcome := model.BatchOutcome{
			BatchNumber: batchNumber,
			SuccessRate: result.SuccessRate(),
			BatchSize:   len(batch),
			BatchDelay:  state.CurrentBatchDelay,
		}
		tracker.BatchCompleted(outcome)
		o.Rate.Observe(&state, outcome)
		_ = store.SaveBatchOutcome(runID, outcome)

		start = end
		if start < len(items) {
			if err := o.sleep(ctx, state.CurrentBatchDelay); err != nil {
				_ = store.UpdateRunStatus(runID, "cancelled")
				return tracker.Summary(state, o.Rate.Adaptive, 0), fmt.Errorf("run cancelled: %w", err)
			}
		}
	}

	merged := 0
	if o.Spec.Merge.Enabled {
		merged, err = o.Merger.MergeTree(o.Spec.OutputRoot)
		if err != nil {
			_ = store.UpdateRunStatus(runID, "failed")
			return tracker.Summary(state, o.Rate.Adaptive, merged), fmt.Errorf("merge stage failed: %w", err)
		}
	}

	summary := tracker.Summary(state, o.Rate.Adaptive, merged)

	if err := tracker.WriteErrorLog(o.resolvePath(o.Spec.ErrorLog)); err != nil {
		fmt.Printf("⚠️ Could not write error log: %v\n", err)
	}
	if err := o.writeCompletionFlag(runID, summary); err != nil {
		fmt.Printf("⚠️ Could not write completion flag: %v\n", err)
	}

	_ = store.SaveRunSummary(runID, summary)
	_ = store.UpdateRunStatus(runID, "completed")
	PrintSummary(summary)
	return summary, nil
}

// runBatch drains one batch through the bounded runner. Successes record
// themselves inside their task; failures are recorded from the runner's
// failed set, which also covers tasks that never got a slot, so the run
// counters account for every item in the batch.
func (o *Orchestrator) runBatch(ctx context.Context, batch []*model.WorkItem, tracker *RunTracker, runID string) RunnerResult {
	tasks := make([]*Task, 0, len(batch))
	for _, item := range batch {
		item := item
		tasks = append(tasks, &Task{
			Item: item,
			Execute: func(ctx context.Context) error {
				var segments []model.TextSegment
				var language string
				err := o.Retry.Execute(ctx, item, func(ctx context.Context) error {
					segs, lang, err := o.processItem(ctx, item)
					if err != nil {
						return err
					}
					segments, language = segs, lang
					return nil
				})
				if err != nil {
					return err
				}
				tracker.Record(model.ProcessingResult{
					Item:     item,
					Success:  true,
					Segments: segments,
					Language: language,
				})
				return nil
			},
		})
	}

	result := RunTasks(ctx, tasks, o.Spec.MaxConcurrency, nil)
	for _, failed := range result.FailedTasks {
		tracker.Record(model.ProcessingResult{Item: failed.Item, Err: Classify(failed.Err)})
		_ = store.SaveRunError(runID, failed.Item.InputPath, failed.Err)
	}
	return result
}

// processItem is one recognition attempt: call the remote capability,
// assemble the fragments, write the artifact in the configured encoding.
// Returns the recognized segments and language for the item's result record.
func (o *Orchestrator) processItem(ctx context.Context, item *model.WorkItem) ([]model.TextSegment, string, error) {
	result, err := o.Recognizer.Recognize(ctx, item.InputPath)
	if err != nil {
		return nil, "", err
	}

	segments := make([]model.TextSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, model.TextSegment{Text: seg.Text})
	}
	body := o.Assembler.Assemble(segments)

	data, err := utils.EncodeText(o.Spec.OutputEncoding, body)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(item.OutputPath), 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory for %s: %w", item.OutputPath, err)
	}
	if err := os.WriteFile(item.OutputPath, data, 0644); err != nil {
		return nil, "", fmt.Errorf("failed to write artifact %s: %w", item.OutputPath, err)
	}
	return segments, result.Language, nil
}

// writeCompletionFlag drops the flag file that marks the run as finished.
func (o *Orchestrator) writeCompletionFlag(runID string, summary model.RunSummary) error {
	if o.Spec.CompletionFlag == "" {
		return nil
	}
	content := fmt.Sprintf("run %s completed at %s after %s\n",
		runID, time.Now().Format(time.RFC3339), utils.FormatClock(summary.Duration))
	return os.WriteFile(o.resolvePath(o.Spec.CompletionFlag), []byte(content), 0644)
}

// resolvePath anchors relative paths under the output root.
func (o *Orchestrator) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.Spec.OutputRoot, path)
}
