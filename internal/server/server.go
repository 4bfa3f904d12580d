package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sells-group/sales-agent/internal/config"
	"github.com/sells-group/sales-agent/internal/model"
)

// Processor is the request-processing pipeline the transport dispatches to.
type Processor interface {
	ProcessCall(ctx context.Context, audio []byte, filename string) (*model.CallResult, error)
	ProcessEmail(ctx context.Context, req model.EmailRequest) (*model.EmailResult, error)
}

// Server is the HTTP transport for the processing pipeline.
type Server struct {
	cfg       *config.Config
	processor Processor
	router    *chi.Mux
}

// New wires up routes and middleware around the given processor.
func New(cfg *config.Config, processor Processor) *Server {
	s := &Server{
		cfg:       cfg,
		processor: processor,
		router:    chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	s.router.Use(requestLogger)
	s.router.Use(metricsMiddleware)

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Route("/ai", func(r chi.Router) {
		r.Post("/process-call", s.handleProcessCall)
		r.Post("/process-email", s.handleProcessEmail)
	})

	return s
}

// Handler exposes the routed handler, mainly for tests and the http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs one line per completed request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zap.L().Info("request complete",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
