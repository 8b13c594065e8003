package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// route is one registered method+pattern pair. Patterns are segment based:
// "*" matches exactly one segment, a trailing "*" matches the rest.
type route struct {
	method  string
	pattern string
	handler HandlerFunc
}

// Router is a small method-aware HTTP router with request logging. Routes
// are matched in registration order, so register specific patterns before
// generic ones.
type Router struct {
	routes []route
	mounts map[string]http.Handler // prefix-mounted sub-handlers
}

func New() *Router {
	return &Router{
		mounts: make(map[string]http.Handler),
	}
}

// ServeHTTP dispatches a request and logs its outcome.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	r.dispatch(lrw, req)

	duration := time.Since(start)
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, duration, colorReset,
	)
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	for prefix, h := range r.mounts {
		if strings.HasPrefix(req.URL.Path, prefix) {
			h.ServeHTTP(w, req)
			return
		}
	}

	pathMatched := false
	for _, rt := range r.routes {
		if !matchPattern(req.URL.Path, rt.pattern) {
			continue
		}
		pathMatched = true
		if rt.method == req.Method {
			rt.handler(w, req)
			return
		}
	}

	if pathMatched {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	} else {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

// matchPattern compares a request path against a segment pattern.
func matchPattern(path, pattern string) bool {
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")

	// Trailing "*" swallows any number of remaining segments.
	if len(patSegs) > 0 && patSegs[len(patSegs)-1] == "*" && len(pathSegs) >= len(patSegs)-1 {
		for i := 0; i < len(patSegs)-1; i++ {
			if patSegs[i] != "*" && patSegs[i] != pathSegs[i] {
				return false
			}
		}
		return true
	}

	if len(pathSegs) != len(patSegs) {
		return false
	}
	for i, seg := range patSegs {
		if seg != "*" && seg != pathSegs[i] {
			return false
		}
	}
	return true
}

func (r *Router) register(method, pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, route{method: method, pattern: pattern, handler: handler})
}

func (r *Router) GET(pattern string, handler HandlerFunc) {
	r.register(http.MethodGet, pattern, handler)
}
func (r *Router) POST(pattern string, handler HandlerFunc) {
	r.register(http.MethodPost, pattern, handler)
}
func (r *Router) PUT(pattern string, handler HandlerFunc) {
	r.register(http.MethodPut, pattern, handler)
}
func (r *Router) DELETE(pattern string, handler HandlerFunc) {
	r.register(http.MethodDelete, pattern, handler)
}

// Mount serves every request under prefix with the given handler. Mounts win
// over registered routes.
func (r *Router) Mount(prefix string, handler http.Handler) {
	r.mounts[prefix] = handler
}

// Routes lists registered method:pattern keys, for tests.
func (r *Router) Routes() []string {
	keys := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		keys = append(keys, rt.method+":"+rt.pattern)
	}
	return keys
}

// Start runs the HTTP server on addr. Blocks until the server exits.
func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r))
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
