package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTTPRecognizer calls a remote OCR endpoint over HTTP. Each call is bounded
// by a per-call timeout; a stuck call surfaces as a retryable failure.
type HTTPRecognizer struct {
	Endpoint string
	APIKey   string
	Language string
	Timeout  time.Duration
	Client   *http.Client
}

// NewHTTPRecognizer creates a recognizer for the given endpoint.
func NewHTTPRecognizer(endpoint, apiKey, language string, timeout time.Duration) *HTTPRecognizer {
	return &HTTPRecognizer{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Language: language,
		Timeout:  timeout,
		Client:   &http.Client{},
	}
}

// Recognize uploads one image and decodes the recognized segments.
func (r *HTTPRecognizer) Recognize(ctx context.Context, imagePath string) (*Result, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build recognition request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeFor(imagePath))
	req.Header.Set("X-Filename", filepath.Base(imagePath))
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}
	if r.Language != "" {
		req.Header.Set("X-Language-Hint", r.Language)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recognition response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode recognition response: %w", err)
	}
	return &result, nil
}

// errorMessage extracts a usable message from an error response body.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return http.StatusText(status)
}

func contentTypeFor(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
