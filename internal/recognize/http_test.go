package recognize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0644))
	return path
}

func TestRecognizeSuccess(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"segments":[{"text":"First line."},{"text":"second line"}],"language":"en"}`))
	}))
	defer server.Close()

	r := NewHTTPRecognizer(server.URL, "secret-key", "hi", 5*time.Second)
	result, err := r.Recognize(context.Background(), writeImage(t, "page.png"))
	require.NoError(t, err)

	require.Len(t, result.Segments, 2)
	assert.Equal(t, "First line.", result.Segments[0].Text)
	assert.Equal(t, "en", result.Language)

	assert.Equal(t, "image/png", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "page.png", gotHeaders.Get("X-Filename"))
	assert.Equal(t, "Bearer secret-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "hi", gotHeaders.Get("X-Language-Hint"))
}

func TestRecognizeRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))
	defer server.Close()

	r := NewHTTPRecognizer(server.URL, "", "", 5*time.Second)
	_, err := r.Recognize(context.Background(), writeImage(t, "page.jpg"))
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 429, apiErr.StatusCode)
	assert.Equal(t, "rate limit exceeded", apiErr.Message)
	assert.True(t, IsRateLimited(err))
}

func TestRecognizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("something broke"))
	}))
	defer server.Close()

	r := NewHTTPRecognizer(server.URL, "", "", 5*time.Second)
	_, err := r.Recognize(context.Background(), writeImage(t, "page.png"))
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "something broke", apiErr.Message)
	assert.False(t, IsRateLimited(err))
}

func TestRecognizeMissingFile(t *testing.T) {
	r := NewHTTPRecognizer("http://localhost:0", "", "", time.Second)
	_, err := r.Recognize(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRecognizeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	r := NewHTTPRecognizer(server.URL, "", "", 20*time.Millisecond)
	_, err := r.Recognize(context.Background(), writeImage(t, "slow.png"))
	assert.Error(t, err)
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"429 status", &APIError{StatusCode: 429, Message: "slow down"}, true},
		{"wrapped 429 status", fmt.Errorf("recognize: %w", &APIError{StatusCode: 429, Message: "slow down"}), true},
		{"quota message", errors.New("user quota exceeded"), true},
		{"too many requests message", errors.New("Too Many Requests"), true},
		{"digits in a file name", errors.New("failed to read image page429.png: no such file"), false},
		{"bare status digits", errors.New("unexpected status 429 from upstream"), false},
		{"unrelated", errors.New("dial tcp: connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentTypeFor("x/y.JPG"))
	assert.Equal(t, "image/tiff", contentTypeFor("scan.tif"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("strange.raw"))
}
