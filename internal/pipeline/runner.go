package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"ocr-batch-pipeline/internal/model"
)

// Task is one unit of work for the runner: a WorkItem plus the function that
// processes it. Execute is invoked at most once; a task whose slot never
// opens still fails through the same accounting as an executed one. Err
// holds the failure the runner counted for this task.
type Task struct {
	Item    *model.WorkItem
	Execute func(ctx context.Context) error
	Err     error
}

// RunnerResult aggregates per-task outcomes for one batch.
type RunnerResult struct {
	CompletedCount int
	FailedCount    int
	FailedTasks    []*Task
}

// SuccessRate returns the fraction of tasks that completed successfully.
func (r RunnerResult) SuccessRate() float64 {
	total := r.CompletedCount + r.FailedCount
	if total == 0 {
		return 1.0
	}
	return float64(r.CompletedCount) / float64(total)
}

// RunTasks executes all tasks with at most maxConcurrency in flight at once.
// Individual task failures are caught and recorded, never raised: the runner
// drains the full list regardless of partial failure. The returned result is
// complete only after every started task has reached a terminal status.
func RunTasks(ctx context.Context, tasks []*Task, maxConcurrency int, onProgress func(done, total int)) RunnerResult {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	sem := semaphore.NewWeighted(int64(maxConcurrency))
	var wg sync.WaitGroup
	var mu sync.Mutex
	result := RunnerResult{}
	done := 0

	for _, task := range tasks {
		wg.Add(1)
		go func(task *Task) {
			defer wg.Done()

			var err error
			if acqErr := sem.Acquire(ctx, 1); acqErr != nil {
				task.Item.Status = model.StatusProcessing
				err = fmt.Errorf("task not started for %s: %w", task.Item.InputPath, acqErr)
			} else {
				task.Item.Status = model.StatusProcessing
				err = runTask(ctx, task)
				sem.Release(1)
			}

			mu.Lock()
			if err != nil {
				task.Err = err
				task.Item.Status = model.StatusFailed
				result.FailedCount++
				result.FailedTasks = append(result.FailedTasks, task)
			} else {
				task.Item.Status = model.StatusSucceeded
				result.CompletedCount++
			}
			done++
			progress := done
			mu.Unlock()

			if onProgress != nil {
				onProgress(progress, len(tasks))
			}
		}(task)
	}

	wg.Wait()
	return result
}

// runTask invokes a task's Execute, converting a panic into an error so a
// misbehaving task cannot take down its siblings.
func runTask(ctx context.Context, task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked for %s: %v", task.Item.InputPath, r)
		}
	}()
	return task.Execute(ctx)
}
