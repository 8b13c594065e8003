package model

import "encoding/json"

// RecognizerSpec configures the external recognition endpoint.
type RecognizerSpec struct {
	Endpoint string `json:"endpoint"` // HTTP endpoint of the OCR capability
	APIKey   string `json:"apiKey,omitempty"`
	Timeout  string `json:"timeout"`  // per-call timeout, e.g. "90s"
	Language string `json:"language"` // optional language hint sent with each call
}

// RateSpec configures the adaptive rate controller.
type RateSpec struct {
	Adaptive           bool    `json:"adaptive"`
	InitialBatchSize   int     `json:"initialBatchSize"`
	MinBatchSize       int     `json:"minBatchSize"`
	MaxBatchSize       int     `json:"maxBatchSize"`
	InitialBatchDelay  string  `json:"initialBatchDelay"` // e.g. "2s"
	MinBatchDelay      string  `json:"minBatchDelay"`
	MaxBatchDelay      string  `json:"maxBatchDelay"`
	ScaleUpThreshold   float64 `json:"scaleUpThreshold"`   // avg success rate at or above → scale up
	ScaleDownThreshold float64 `json:"scaleDownThreshold"` // avg success rate at or below → scale down
	ScalingFactor      float64 `json:"scalingFactor"`
	AdjustmentInterval int     `json:"adjustmentInterval"` // evaluate every N batches; 1 = every batch
	WindowSize         int     `json:"windowSize"`         // trailing outcomes averaged per evaluation
}

// RetrySpec configures per-item retry behavior.
type RetrySpec struct {
	MaxRetries          int     `json:"maxRetries"`
	BaseRetryDelay      string  `json:"baseRetryDelay"` // e.g. "1s"
	MaxRetryDelay       string  `json:"maxRetryDelay"`
	RateLimitMultiplier float64 `json:"rateLimitMultiplier"` // extra backoff for rate-limited failures
	ExponentialBackoff  bool    `json:"exponentialBackoff"`
}

// AssemblySpec configures the text assembly engine.
type AssemblySpec struct {
	ShortTextThreshold int `json:"shortTextThreshold"` // fragments shorter than this always break the line
}

// MergeSpec configures the per-directory merge stage.
type MergeSpec struct {
	Enabled bool   `json:"enabled"`
	Suffix  string `json:"suffix"` // appended to the directory name, marks merge artifacts
}

// RunSpec defines the entire batch OCR run configuration.
type RunSpec struct {
	InputRoot      string         `json:"inputRoot"`
	OutputRoot     string         `json:"outputRoot"`
	Extensions     []string       `json:"extensions"`     // eligible image extensions
	OutputEncoding string         `json:"outputEncoding"` // encoding of written text artifacts
	Limit          int            `json:"limit"`          // restrict to first K items; 0 = all
	MaxConcurrency int            `json:"maxConcurrency"` // in-flight recognition call bound
	MaxFileSizeMB  int64          `json:"maxFileSizeMB"`  // oversized file warning threshold
	ErrorLog       string         `json:"errorLog"`       // append-only error log path
	CompletionFlag string         `json:"completionFlag"` // flag file written after a successful run
	Recognizer     RecognizerSpec `json:"recognizer"`
	Rate           RateSpec       `json:"rate"`
	Retry          RetrySpec      `json:"retry"`
	Assembly       AssemblySpec   `json:"assembly"`
	Merge          MergeSpec      `json:"merge"`
}

// DefaultRunSpec returns a fully-populated spec. Loading a JSON spec
// unmarshals on top of these values, so absent fields keep their defaults.
func DefaultRunSpec() RunSpec {
	return RunSpec{
		Extensions:     []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"},
		OutputEncoding: "utf-8",
		MaxConcurrency: 5,
		MaxFileSizeMB:  50,
		ErrorLog:       "ocr_errors.log",
		CompletionFlag: "ocr_run_complete.flag",
		Recognizer: RecognizerSpec{
			Timeout: "90s",
		},
		Rate: RateSpec{
			Adaptive:           true,
			InitialBatchSize:   10,
			MinBatchSize:       1,
			MaxBatchSize:       50,
			InitialBatchDelay:  "2s",
			MinBatchDelay:      "500ms",
			MaxBatchDelay:      "60s",
			ScaleUpThreshold:   0.95,
			ScaleDownThreshold: 0.80,
			ScalingFactor:      1.5,
			AdjustmentInterval: 5,
			WindowSize:         3,
		},
		Retry: RetrySpec{
			MaxRetries:          3,
			BaseRetryDelay:      "1s",
			MaxRetryDelay:       "30s",
			RateLimitMultiplier: 2,
			ExponentialBackoff:  true,
		},
		Assembly: AssemblySpec{
			ShortTextThreshold: 10,
		},
		Merge: MergeSpec{
			Enabled: true,
			Suffix:  "_merged",
		},
	}
}

// ParseRunSpec decodes a JSON run spec over the defaults.
func ParseRunSpec(data []byte) (RunSpec, error) {
	spec := DefaultRunSpec()
	if err := json.Unmarshal(data, &spec); err != nil {
		return RunSpec{}, err
	}
	return spec, nil
}
