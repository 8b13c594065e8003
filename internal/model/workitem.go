package model

// ItemStatus tracks a WorkItem through its lifecycle.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusProcessing ItemStatus = "processing"
	StatusSucceeded  ItemStatus = "succeeded"
	StatusFailed     ItemStatus = "failed"
)

// Terminal reports whether a status ends the item's lifecycle.
func (s ItemStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// WorkItem is one input artifact scheduled for recognition, with its derived
// output location and attempt state. Attempt and Status are mutated only by
// the retry policy and the task runner.
type WorkItem struct {
	InputPath  string     `json:"input_path"`
	OutputPath string     `json:"output_path"`
	Attempt    int        `json:"attempt"`
	Status     ItemStatus `json:"status"`
}

// TextSegment is one recognized text fragment, in scan order.
type TextSegment struct {
	Text string `json:"text"`
}

// ErrorInfo carries a failure message and its rate-limit classification.
// The classification is derived once at failure time and never changes.
type ErrorInfo struct {
	Message       string `json:"message"`
	IsRateLimited bool   `json:"is_rate_limited"`
}

// ProcessingResult is the immutable outcome of one WorkItem.
type ProcessingResult struct {
	Item     *WorkItem     `json:"item"`
	Success  bool          `json:"success"`
	Err      *ErrorInfo    `json:"error,omitempty"`
	Segments []TextSegment `json:"segments,omitempty"`
	Language string        `json:"language,omitempty"`
}
