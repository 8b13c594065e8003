package pipeline

import (
	"fmt"
	"math"
	"time"

	"ocr-batch-pipeline/internal/model"
	"ocr-batch-pipeline/pkg/utils"
)

// RateController tunes batch size and inter-batch delay from the trailing
// success rate, because the true limit of the remote capability is unknown
// and may drift. It is a discrete, bounded integral controller: it trades
// exact rate-limit compliance for robustness to a nonstationary limit.
//
// The controller never owns state. RateState is owned by the orchestrator
// and passed in explicitly, so the controller is a pure decision function
// over (state, outcome).
type RateController struct {
	Adaptive           bool
	InitialBatchSize   int
	MinBatchSize       int
	MaxBatchSize       int
	InitialBatchDelay  time.Duration
	MinBatchDelay      time.Duration
	MaxBatchDelay      time.Duration
	ScaleUpThreshold   float64
	ScaleDownThreshold float64
	ScalingFactor      float64
	AdjustmentInterval int
	WindowSize         int
}

// NewRateController builds a controller from the run spec.
func NewRateController(spec model.RateSpec) *RateController {
	c := &RateController{
		Adaptive:           spec.Adaptive,
		InitialBatchSize:   spec.InitialBatchSize,
		MinBatchSize:       spec.MinBatchSize,
		MaxBatchSize:       spec.MaxBatchSize,
		InitialBatchDelay:  utils.ParseDuration(spec.InitialBatchDelay, 2*time.Second),
		MinBatchDelay:      utils.ParseDuration(spec.MinBatchDelay, 500*time.Millisecond),
		MaxBatchDelay:      utils.ParseDuration(spec.MaxBatchDelay, time.Minute),
		ScaleUpThreshold:   spec.ScaleUpThreshold,
		ScaleDownThreshold: spec.ScaleDownThreshold,
		ScalingFactor:      spec.ScalingFactor,
		AdjustmentInterval: spec.AdjustmentInterval,
		WindowSize:         spec.WindowSize,
	}
	if c.MinBatchSize < 1 {
		c.MinBatchSize = 1
	}
	if c.InitialBatchSize < c.MinBatchSize {
		c.InitialBatchSize = c.MinBatchSize
	}
	if c.MaxBatchSize < c.InitialBatchSize {
		c.MaxBatchSize = c.InitialBatchSize
	}
	if c.ScalingFactor <= 1 {
		c.ScalingFactor = 1.5
	}
	if c.AdjustmentInterval < 1 {
		c.AdjustmentInterval = 1
	}
	if c.WindowSize < 1 {
		c.WindowSize = 3
	}
	return c
}

// InitialState returns a fresh RateState for one run.
func (c *RateController) InitialState() model.RateState {
	return model.RateState{
		CurrentBatchSize:  c.InitialBatchSize,
		CurrentBatchDelay: c.InitialBatchDelay,
	}
}

// Observe records a completed batch and, every AdjustmentInterval batches,
// re-evaluates size and delay from the trailing window mean. Values are
// rounded to the nearest integer unit first and clamped after, every
// adjustment, so they can never escape the configured bounds.
func (c *RateController) Observe(state *model.RateState, outcome model.BatchOutcome) {
	state.History = append(state.History, outcome)

	if !c.Adaptive {
		return
	}
	if len(state.History)%c.AdjustmentInterval != 0 {
		return
	}

	avg := c.trailingAverage(state.History)
	oldSize, oldDelay := state.CurrentBatchSize, state.CurrentBatchDelay

	switch {
	case avg >= c.ScaleUpThreshold:
		state.CurrentBatchSize = clampInt(roundScaled(state.CurrentBatchSize, c.ScalingFactor), c.MinBatchSize, c.MaxBatchSize)
		state.CurrentBatchDelay = clampDuration(roundScaledDuration(state.CurrentBatchDelay, 1/c.ScalingFactor), c.MinBatchDelay, c.MaxBatchDelay)
	case avg <= c.ScaleDownThreshold:
		state.CurrentBatchSize = clampInt(roundScaled(state.CurrentBatchSize, 1/c.ScalingFactor), c.MinBatchSize, c.MaxBatchSize)
		state.CurrentBatchDelay = clampDuration(roundScaledDuration(state.CurrentBatchDelay, c.ScalingFactor), c.MinBatchDelay, c.MaxBatchDelay)
	default:
		return
	}

	if state.CurrentBatchSize != oldSize || state.CurrentBatchDelay != oldDelay {
		state.AdjustmentCount++
		fmt.Printf("⚖️ Rate adjusted after batch %d (avg success %.2f): size %d → %d, delay %v → %v\n",
			outcome.BatchNumber, avg, oldSize, state.CurrentBatchSize, oldDelay, state.CurrentBatchDelay)
	}
}

// trailingAverage is the mean success rate over the most recent WindowSize
// outcomes, or fewer when history is shorter.
func (c *RateController) trailingAverage(history []model.BatchOutcome) float64 {
	if len(history) == 0 {
		return 1.0
	}
	start := len(history) - c.WindowSize
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, outcome := range history[start:] {
		sum += outcome.SuccessRate
	}
	return sum / float64(len(history)-start)
}

func roundScaled(value int, factor float64) int {
	return int(math.Round(float64(value) * factor))
}

// roundScaledDuration scales a delay and rounds it to whole milliseconds.
func roundScaledDuration(d time.Duration, factor float64) time.Duration {
	ms := math.Round(float64(d) * factor / float64(time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
