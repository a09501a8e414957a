package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avolkov/betboard/internal/extractor"
	"github.com/avolkov/betboard/internal/pkg/config"
)

// Server exposes the extraction service to the browser presentation
// layer. Read paths never surface upstream errors; the worst answer is
// an empty board.
type Server struct {
	service *extractor.Service
	cfg     *config.ServerConfig
}

func New(service *extractor.Service, cfg *config.ServerConfig) *Server {
	return &Server{service: service, cfg: cfg}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", s.handlePing)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/matches", s.handleMatches)
	r.Get("/match-odds", s.handleMatchOdds)
	r.Post("/cache/clear", s.handleCacheClear)

	return r
}

// Run starts the server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, srv *Server, service string) {
	if srv.cfg.ReadHeaderTimeout <= 0 {
		slog.Error("server.read_header_timeout must be specified in config")
		os.Exit(1)
	}
	if srv.cfg.Port <= 0 {
		slog.Error("server.port must be specified in config")
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.cfg.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: srv.cfg.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("API server listening", "service", service, "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "service", service, "error", err)
		}
	}()
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "pong")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"metrics": s.service.Snapshot(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Snapshot())
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	result := s.service.Matches(r.Context(), date)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMatchOdds(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match_id")
	if matchID == "" {
		writeError(w, http.StatusBadRequest, "match_id is required")
		return
	}
	competitionID := r.URL.Query().Get("competition_id")

	detail, ok := s.service.MatchDetail(r.Context(), matchID, competitionID)
	if !ok {
		writeError(w, http.StatusNotFound, "no odds available for match")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.service.ClearCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request handled",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
