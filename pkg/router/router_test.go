package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"exact", "/api/v1/runs", "/api/v1/runs", true},
		{"wildcard segment", "/api/v1/runs/abc", "/api/v1/runs/*", true},
		{"wildcard with suffix", "/api/v1/runs/abc/errors", "/api/v1/runs/*/errors", true},
		{"wrong suffix", "/api/v1/runs/abc/errors", "/api/v1/runs/*/batches", false},
		{"too few segments", "/api/v1/runs", "/api/v1/runs/*/errors", false},
		{"trailing wildcard swallows rest", "/api/v1/runs/a/b/c", "/api/v1/runs/*", true},
		{"mismatched literal", "/api/v2/runs", "/api/v1/runs", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPattern(tt.path, tt.pattern))
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("list"))
	})
	r.GET("/api/v1/runs/*/errors", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("errors"))
	})
	r.GET("/api/v1/runs/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("one"))
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"exact route", http.MethodGet, "/api/v1/runs", http.StatusOK, "list"},
		{"specific route wins over generic", http.MethodGet, "/api/v1/runs/id-1/errors", http.StatusOK, "errors"},
		{"generic wildcard", http.MethodGet, "/api/v1/runs/id-1", http.StatusOK, "one"},
		{"unknown path", http.MethodGet, "/api/v1/nothing", http.StatusNotFound, ""},
		{"known path wrong method", http.MethodDelete, "/api/v1/runs", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRouterMount(t *testing.T) {
	r := New()
	r.Mount("/swagger/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("swagger ui"))
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "swagger ui", rec.Body.String())
}

func TestRouterRoutesListing(t *testing.T) {
	r := New()
	r.POST("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {})
	r.GET("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {})

	routes := r.Routes()
	assert.Contains(t, routes, "POST:/api/v1/runs")
	assert.Contains(t, routes, "GET:/api/v1/runs")
}
