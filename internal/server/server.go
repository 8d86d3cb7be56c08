// Package server exposes the canonical P&L and the comparison report
// over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/canonpl-dev/canonpl/internal/canonical"
	"github.com/canonpl-dev/canonpl/internal/httpx"
	"github.com/canonpl-dev/canonpl/internal/months"
	"github.com/canonpl-dev/canonpl/internal/report"
)

// Server holds the HTTP handlers over the canonical pipeline.
type Server struct {
	canon  *canonical.Service
	gen    *report.Generator
	logger *slog.Logger
}

// New creates a Server. A nil logger falls back to slog.Default.
func New(canon *canonical.Service, gen *report.Generator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{canon: canon, gen: gen, logger: logger}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/api/pl", s.handlePL)
	r.Get("/api/pl/value", s.handleValue)
	r.Get("/api/pl/percent", s.handlePercent)
	r.Get("/api/report", s.handleReport)
	r.Get("/api/report/export.csv", s.handleExportCSV)
	r.Get("/api/report/export.xlsx", s.handleExportXLSX)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handlePL(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, s.canon.CanonicalPL())
}

// handleValue resolves a single account's value for a month. The
// account query parameter is required; month defaults to October.
func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	account, month, ok := accountMonth(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"account": account,
		"month":   month,
		"value":   s.canon.AccountValue(account, month),
	})
}

func (s *Server) handlePercent(w http.ResponseWriter, r *http.Request) {
	account, month, ok := accountMonth(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"account": account,
		"month":   month,
		"percent": s.canon.AccountPercent(account, month),
	})
}

func accountMonth(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	account := r.URL.Query().Get("account")
	if account == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "account query parameter is required")
		return "", "", false
	}
	month := r.URL.Query().Get("month")
	if month == "" {
		month = months.Oct
	}
	if !months.IsShortLabel(month) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "month must be a short label like \"Oct 2025\"")
		return "", "", false
	}
	return account, month, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rd, err := s.gen.Generate(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, rd)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rd, err := s.gen.Generate(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="pl-comparison.csv"`)
	if err := report.WriteCSV(w, rd); err != nil {
		s.logger.Error("csv export", "error", err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	rd, err := s.gen.Generate(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="pl-comparison.xlsx"`)
	if err := report.WriteXLSX(w, rd); err != nil {
		s.logger.Error("xlsx export", "error", err)
	}
}
