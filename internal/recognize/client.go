// Package recognize is the boundary to the external OCR capability. The
// remote service is treated as opaque, occasionally failing, and rate
// limited; callers decide retry behavior from the error classification here.
package recognize

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Segment is one recognized text fragment, in scan order.
type Segment struct {
	Text string `json:"text"`
}

// Result is a single successful recognition response.
type Result struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Recognizer performs OCR on a single image artifact.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (*Result, error)
}

// APIError is a non-2xx response from the recognition endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recognition API error (status %d): %s", e.StatusCode, e.Message)
}

// rateLimitIndicators are the known phrase markers of a rate-limited
// failure, matched case-insensitively. Bare status digits are not matched;
// a real 429 arrives as an APIError and is classified by status code.
var rateLimitIndicators = []string{
	"rate limit",
	"quota exceeded",
	"too many requests",
}

// IsRateLimited classifies an error as rate-limit-flavored. Classification
// only affects backoff magnitude, never whether a retry is attempted.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, indicator := range rateLimitIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
