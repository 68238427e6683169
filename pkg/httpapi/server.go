package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/blueprintmrk/graphy/pkg/pipeline"
	"github.com/blueprintmrk/graphy/pkg/store"
)

// Server wires the chart store and render pipeline into an HTTP handler.
// It is safe for concurrent use; all state lives in the store and the
// runner's cache.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server over the given store and runner.
// A nil logger defaults to log.Default().
func NewServer(s store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: s, runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleChartCreate)
			r.Get("/", s.handleChartList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleChartGet)
				r.Put("/", s.handleChartUpdate)
				r.Delete("/", s.handleChartDelete)
				r.Post("/render", s.handleChartRender)
			})
		})
	})

	return r
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		s.logger.Info("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(req.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
