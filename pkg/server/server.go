// Package server exposes the import session flow over HTTP: upload a
// statement, review the proposed mapping, commit or cancel. It is the
// JSON contract the mapping confirmation UI talks to.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise/pkg/config"
	"github.com/wealthwise/wealthwise/pkg/deposit"
	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/extract"
	"github.com/wealthwise/wealthwise/pkg/mapping"
	"github.com/wealthwise/wealthwise/pkg/models"
	"github.com/wealthwise/wealthwise/pkg/service"
)

// Server handles HTTP requests for statement imports.
type Server struct {
	config  *config.Config
	logger  *log.Logger
	mux     *http.ServeMux
	imports *service.Service
}

// New creates a new HTTP server around an import service.
func New(cfg *config.Config, imports *service.Service, logger *log.Logger) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		imports: imports,
	}
	s.setupRoutes()
	return s
}

// Start starts the HTTP server on the configured address.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.config.ListenAddr)
	return http.ListenAndServe(s.config.ListenAddr, s.mux)
}

// Handler returns the routed handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/import", s.withLogging(s.handleUpload))
	s.mux.HandleFunc("/api/import/commit", s.withLogging(s.handleCommit))
	s.mux.HandleFunc("/api/import/cancel", s.withLogging(s.handleCancel))
	s.mux.HandleFunc("/api/deposits/valuation", s.withLogging(s.handleDepositValuation))
}

// ---------------- upload handler ----------------

// handleUpload accepts a multipart statement upload and responds with
// the session preview: headers, sample rows and the proposed mapping.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	file, header, err := r.FormFile("statement")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "statement file required", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	preview, err := s.imports.Begin(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.respondImportError(w, r, err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"preview": preview,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// ---------------- commit handler ----------------

type commitRequest struct {
	SessionID string                 `json:"sessionId"`
	AccountID string                 `json:"accountId"`
	Mappings  []models.ColumnMapping `json:"mappings"`
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}
	if req.SessionID == "" {
		s.respondError(w, r, http.StatusBadRequest, "sessionId required", nil)
		return
	}
	if req.AccountID == "" {
		s.respondError(w, r, http.StatusBadRequest, "accountId required", nil)
		return
	}

	outcome, err := s.imports.Commit(r.Context(), req.SessionID, req.Mappings, req.AccountID)
	if err != nil {
		s.respondImportError(w, r, err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"result": outcome,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// ---------------- cancel handler ----------------

type cancelRequest struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	s.imports.Cancel(req.SessionID)

	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// ---------------- deposit valuation handler ----------------

// handleDepositValuation values a fixed deposit from query parameters.
// Principal, rate and maturity are required; completed months default
// to the count derived from the maturity date.
func (s *Server) handleDepositValuation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	q := r.URL.Query()

	principal, err := decimal.NewFromString(q.Get("principal"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid principal", err)
		return
	}
	rate, err := decimal.NewFromString(q.Get("rate"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid rate", err)
		return
	}
	maturity, err := time.Parse("2006-01-02", q.Get("maturity"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid maturity date, want YYYY-MM-DD", err)
		return
	}

	tenure := 12
	if raw := q.Get("tenure"); raw != "" {
		if tenure, err = strconv.Atoi(raw); err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid tenure", err)
			return
		}
	}

	payout := models.PayoutFrequency(q.Get("payout"))
	if payout == "" {
		payout = models.PayoutMaturity
	}

	d := models.Deposit{
		Principal:    principal,
		AnnualRate:   rate,
		TenureMonths: tenure,
		Payout:       payout,
		MaturityDate: maturity,
	}

	if raw := q.Get("tds"); raw != "" {
		if d.TDSDeducted, err = decimal.NewFromString(raw); err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid tds", err)
			return
		}
	}

	today := time.Now()
	if raw := q.Get("completed"); raw != "" {
		if d.CompletedMonths, err = strconv.Atoi(raw); err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid completed months", err)
			return
		}
	} else {
		d.CompletedMonths = deposit.DeriveCompletedMonths(d, today)
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"valuation": deposit.Valuate(d, today),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// --- helpers ---

// respondImportError maps pipeline errors to HTTP statuses.
func (s *Server) respondImportError(w http.ResponseWriter, r *http.Request, err error) {
	var parseErr *extract.ParseError
	var incompleteErr *mapping.IncompleteError

	switch {
	case errors.Is(err, detect.ErrUnsupportedFormat):
		s.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &parseErr):
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.As(err, &incompleteErr):
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, service.ErrSessionNotFound):
		s.respondError(w, r, http.StatusNotFound, err.Error(), nil)
	default:
		s.respondError(w, r, http.StatusInternalServerError, "import failed", err)
	}
}

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log requests and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
