// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     handler
// Description: REST handlers for the TaxWise HTTP API
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/internal/report"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/msto63/taxwise/pkg/core/cache"
	"github.com/msto63/taxwise/pkg/core/health"
	"github.com/msto63/taxwise/pkg/core/logging"
)

// maxBodyBytes limits request bodies
const maxBodyBytes = 64 << 10

// IncomeValue accepts a JSON string ("1,500,000") or number (1500000).
// Numbers are rendered in plain decimal form, so 1.5e6 reads as "1500000"
// exactly as over gRPC.
type IncomeValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *IncomeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = IncomeValue(s)
		return nil
	}
	if string(data) == "null" {
		*v = ""
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = IncomeValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// CalculateRequest is the body of POST /calculate and POST /export/pdf
type CalculateRequest struct {
	MonthlyIncome IncomeValue `json:"monthly_income"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ReportStore keeps recent reports by ID
type ReportStore = cache.Cache[*report.Report]

// NewReportStore creates a report store
func NewReportStore(size int, ttl time.Duration) *ReportStore {
	return cache.New[*report.Report](cache.Config{MaxItems: size, TTL: ttl})
}

// Handler handles HTTP requests for the API
type Handler struct {
	calc      *calculator.Service
	health    *health.Registry
	reports   *ReportStore
	logger    *logging.Logger
	startTime time.Time
	version   string
}

// NewHandler creates a new API handler. A nil store gets a default one.
func NewHandler(version string, calc *calculator.Service, registry *health.Registry, reports *ReportStore, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.New("http-handler")
	}
	if reports == nil {
		reports = cache.New[*report.Report](cache.DefaultConfig())
	}
	return &Handler{
		calc:      calc,
		health:    registry,
		reports:   reports,
		logger:    logger,
		startTime: time.Now(),
		version:   version,
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		h.handleRoot(w, r)
	case "health":
		h.handleHealth(w, r)
	case "brackets":
		h.handleBrackets(w, r)
	case "calculate":
		h.handleCalculate(w, r)
	case "export/pdf":
		h.handleExportPDF(w, r)
	default:
		if id, ok := strings.CutPrefix(path, "reports/"); ok {
			h.handleReport(w, r, id)
			return
		}
		h.writeError(w, http.StatusNotFound, string(apperror.CodeNotFound), "Unknown endpoint: "+r.URL.Path, nil)
	}
}

// handleRoot returns service information
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "TaxWise NG API",
		"version": h.version,
		"table":   h.calc.Table().Name,
		"endpoints": []string{
			"GET  /api/v1/health",
			"GET  /api/v1/brackets",
			"GET  /api/v1/calculate?income={amount}",
			"POST /api/v1/calculate",
			"POST /api/v1/export/pdf",
			"GET  /api/v1/reports/{id}",
			"GET  /api/v1/reports/{id}/pdf",
			"GET  /api/v1/ws",
		},
		"reports": h.reports.Stats(),
	}
	h.writeJSON(w, http.StatusOK, info)
}

// handleHealth reports the health registry
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "Use GET")
		return
	}
	if h.health == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{
			"status": string(health.StatusHealthy),
			"uptime": time.Since(h.startTime).Round(time.Second).String(),
		})
		return
	}

	rep := h.health.Check(r.Context())
	status := http.StatusOK
	if rep.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, rep)
}

// handleBrackets lists the active bracket table
func (h *Handler) handleBrackets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "Use GET")
		return
	}
	h.writeJSON(w, http.StatusOK, h.calc.Brackets())
}

// handleCalculate computes a report from the body or the income query parameter
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.readIncome(w, r)
	if !ok {
		return
	}

	rep, err := h.calc.Calculate(r.Context(), raw)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.reports.Set(rep.ID.String(), rep)
	h.writeJSON(w, http.StatusOK, calculator.NewResponse(rep))
}

// handleReport serves a stored report as JSON or, with a /pdf suffix, as PDF
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request, path string) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "Use GET")
		return
	}

	id, asPDF := strings.CutSuffix(path, "/pdf")
	rep, ok := h.reports.Get(id)
	if !ok {
		h.writeAppError(w, apperror.New(apperror.CodeNotFound, "report not found or expired").WithDetail("id", id))
		return
	}

	if asPDF {
		h.writePDF(w, rep)
		return
	}
	h.writeJSON(w, http.StatusOK, calculator.NewResponse(rep))
}

// handleExportPDF returns the summary as a PDF attachment
func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, "Use POST")
		return
	}
	raw, ok := h.readIncome(w, r)
	if !ok {
		return
	}

	rep, err := h.calc.Calculate(r.Context(), raw)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.reports.Set(rep.ID.String(), rep)
	h.writePDF(w, rep)
}

// writePDF renders rep into a buffer first so a failed render still gets a
// JSON error response
func (h *Handler) writePDF(w http.ResponseWriter, rep *report.Report) {
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, rep); err != nil {
		h.logger.Error("PDF export failed", "report_id", rep.ID.String(), "error", err)
		h.writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(rep)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("PDF write interrupted", "error", err)
	}
}

// readIncome extracts the raw income from the request. It writes the error
// response itself and returns false on failure.
func (h *Handler) readIncome(w http.ResponseWriter, r *http.Request) (string, bool) {
	switch r.Method {
	case http.MethodGet:
		return r.URL.Query().Get("income"), true
	case http.MethodPost:
		var req CalculateRequest
		if err := h.readJSON(w, r, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, string(apperror.CodeInvalidInput), "Invalid request body", map[string]interface{}{"reason": err.Error()})
			return "", false
		}
		return string(req.MonthlyIncome), true
	default:
		h.methodNotAllowed(w, "Use GET or POST")
		return "", false
	}
}

// Helper methods

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	code := apperror.CodeOf(err)
	status := apperror.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "code", code, "error", err)
	}
	h.writeError(w, status, string(code), apperror.MessageOf(err), apperror.DetailsOf(err))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, hint string) {
	h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", hint, nil)
}
