// Package server exposes the correlation engine over HTTP for the browser
// dashboard. Handlers are thin: decode points, run (or reuse) a sweep, and
// render the result as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/marketmood/marketmood/internal/correlation"
	"github.com/marketmood/marketmood/pkg/constants"
	"github.com/marketmood/marketmood/pkg/mathutil"
	"github.com/marketmood/marketmood/pkg/timeseries"
	"github.com/marketmood/marketmood/pkg/validation"
	"go.uber.org/zap"
)

type contextKey string

const requestIDKey contextKey = "requestID"

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	cache       *correlation.Cache
}

// NewHandler constructs the HTTP handler that serves the correlation API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		cache:       correlation.NewCache(),
	}

	r := chi.NewRouter()
	r.Use(h.requestID)

	r.Post("/api/correlate", h.handleCorrelate)
	r.Get("/api/version", h.handleVersion)

	return r
}

// requestID tags every request with a UUID for log correlation.
func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type correlateRequest struct {
	SeriesA []timeseries.Point `json:"seriesA"`
	SeriesB []timeseries.Point `json:"seriesB"`
	MaxLag  *int               `json:"maxLag,omitempty"`
}

type correlateResponse struct {
	Score    float64                 `json:"score"`
	BestLag  int                     `json:"bestLag"`
	Samples  int                     `json:"samples"`
	MaxLag   int                     `json:"maxLag"`
	Lags     []correlation.LagResult `json:"lags"`
	Cached   bool                    `json:"cached"`
	Duration string                  `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleCorrelate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.requestLogger(r)

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req correlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize))
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	maxLag := constants.DefaultMaxLag
	if req.MaxLag != nil {
		maxLag = *req.MaxLag
	}
	if err := validation.ValidateMaxLag(maxLag); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, cached := h.cache.Analyze(req.SeriesA, req.SeriesB, maxLag)
	duration := time.Since(start)

	logger.Info("scored series pair",
		zap.String("op", "server.handleCorrelate"),
		zap.Int("seriesA", len(req.SeriesA)),
		zap.Int("seriesB", len(req.SeriesB)),
		zap.Int("maxLag", maxLag),
		zap.Int("bestLag", result.BestLag),
		zap.Float64("score", result.Score()),
		zap.Bool("cached", cached),
		zap.Duration("duration", duration),
	)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, correlateResponse{
		Score:    mathutil.RoundScore(result.Score()),
		BestLag:  result.BestLag,
		Samples:  result.Samples,
		MaxLag:   maxLag,
		Lags:     result.Lags,
		Cached:   cached,
		Duration: duration.String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": h.version})
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.requestLogger(r).Warn(message,
		zap.String("op", "server.respondError"),
		zap.Int("status", status),
	)
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: message})
}

// requestLogger returns the handler logger annotated with the request ID.
func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return h.logger.With(zap.String("requestId", id))
	}
	return h.logger
}
