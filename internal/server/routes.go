package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter builds the API routes.
func NewRouter(opts Options) http.Handler {
	h := &handler{runner: opts.Runner, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware(routePattern))
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/healthz", h.health)

	r.Post("/api/analyze", h.analyzeURL)
	r.Post("/api/generate-readme", h.generateReadmeURL)
	r.Post("/api/graph", h.graph)

	r.Post("/repository/info", h.repositoryInfo)
	r.Post("/analyzer/analyze", h.analyzeFiles)
	r.Post("/generator/readme", h.generateReadme)
	r.Post("/deps/extract", h.extract)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed", RequestID: RequestID(r.Context())})
	})
	return r
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
