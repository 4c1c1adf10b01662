package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/boqworks/boqx/internal/boq"
)

// handleHealth reports liveness plus the extraction limiter state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"extractions": s.service.LimiterStatus(),
	})
}

// handleParseExcel returns the raw extraction: the visible, non-empty rows
// of the selected sheet, untransformed.
//
// Form fields: file (required), max_rows (optional).
func (s *Server) handleParseExcel(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readExtractRequest(w, r)
	if !ok {
		return
	}

	result, err := s.service.Extract(r.Context(), *req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, result)
}

// handleParseExcelTransformed returns the BOQ extraction: resolved column
// roles, classified lines, and the summary.
//
// Form fields: file (required), max_rows, quantity_header_hint,
// unit_header_hint (all optional).
func (s *Server) handleParseExcelTransformed(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readExtractRequest(w, r)
	if !ok {
		return
	}
	req.QuantityHint = r.FormValue("quantity_header_hint")
	req.UnitHint = r.FormValue("unit_header_hint")

	result, err := s.service.ExtractTransformed(r.Context(), *req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, result)
}

// readExtractRequest parses the multipart upload shared by both parse
// endpoints. On failure it writes the error response and returns ok=false.
func (s *Server) readExtractRequest(w http.ResponseWriter, r *http.Request) (*boq.ExtractRequest, bool) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, errors.New("file too large or invalid form"))
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"))
		return nil, false
	}
	defer file.Close()

	// Workbook decoders need the full byte stream; size is already bounded
	// by MaxBytesReader.
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, err)
		return nil, false
	}

	maxRows := 0
	if raw := r.FormValue("max_rows"); raw != "" {
		maxRows, err = strconv.Atoi(raw)
		if err != nil || maxRows <= 0 {
			s.respondError(w, r, errors.New("invalid max_rows: must be a positive integer"))
			return nil, false
		}
	}

	return &boq.ExtractRequest{
		FileName: header.Filename,
		Content:  content,
		MaxRows:  maxRows,
	}, true
}
