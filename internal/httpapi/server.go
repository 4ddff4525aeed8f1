// Package httpapi serves the recorded scores as read-only JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/snake-modes/internal/storage"
)

// maxTop caps the n parameter of /scores/top.
const maxTop = 100

// ScoreSource is the part of the score store the API reads.
type ScoreSource interface {
	ScoresForMode(mode string) ([]storage.ScoreRecord, error)
	TopScores(mode string, limit int) ([]storage.ScoreRecord, error)
	HighScore(mode string) (int, error)
	Totals(mode string) (storage.Totals, error)
	DistinctModes() ([]string, error)
}

// Handler holds the score source and serves HTTP.
type Handler struct {
	scores ScoreSource
	modes  []string // Configured mode labels, listed first
	logger *log.Logger
}

// NewHandler returns a handler for the score API.
func NewHandler(scores ScoreSource, modes []string, logger *log.Logger) *Handler {
	return &Handler{scores: scores, modes: modes, logger: logger}
}

// RegisterRoutes mounts the API routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Get("/modes", h.listModes)
	r.Get("/modes/{mode}/high", h.highScore)
	r.Route("/scores", func(r chi.Router) {
		r.Get("/", h.listScores)
		r.Get("/top", h.topScores)
	})
	r.Get("/totals", h.totals)
}

// Router builds the full router with middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	h.RegisterRoutes(r)
	return r
}

// requestLogger logs one line per request.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listModes(w http.ResponseWriter, _ *http.Request) {
	stored, err := h.scores.DistinctModes()
	if err != nil {
		h.fail(w, err)
		return
	}

	modes := slices.Clone(h.modes)
	for _, m := range stored {
		if !slices.Contains(modes, m) {
			modes = append(modes, m)
		}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"modes": modes})
}

func (h *Handler) highScore(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	best, err := h.scores.HighScore(mode)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mode": mode, "high_score": best})
}

func (h *Handler) listScores(w http.ResponseWriter, r *http.Request) {
	records, err := h.scores.ScoresForMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreList(records))
}

func (h *Handler) topScores(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxTop {
			http.Error(w, fmt.Sprintf("n must be between 1 and %d", maxTop), http.StatusBadRequest)
			return
		}
		n = v
	}

	records, err := h.scores.TopScores(r.URL.Query().Get("mode"), n)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreList(records))
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	t, err := h.scores.Totals(r.URL.Query().Get("mode"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// fail logs a storage error and answers 500 without its details.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("score query failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// scoreList never encodes as null.
func scoreList(records []storage.ScoreRecord) []storage.ScoreRecord {
	if records == nil {
		return []storage.ScoreRecord{}
	}
	return records
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve listens on addr until ctx is cancelled, then shuts down.
func Serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("httpapi: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
