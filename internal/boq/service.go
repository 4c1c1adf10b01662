package boq

import (
	"context"
	"time"

	"github.com/boqworks/boqx/internal/config"
	"github.com/boqworks/boqx/internal/logging"
	"github.com/google/uuid"
)

// Service is the entry point for extraction operations. It holds no state
// beyond configuration and the concurrency limiter; every extraction derives
// its column roles, lines, and summary fresh from the request input.
type Service struct {
	cfg     *config.Config
	limiter *ExtractLimiter
}

// NewService creates a Service using the upload limits from cfg.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:     cfg,
		limiter: NewExtractLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
	}
}

// ExtractRequest carries one uploaded workbook and its extraction options.
type ExtractRequest struct {
	FileName string
	Content  []byte

	// MaxRows, when positive, caps the surviving-row sequence; the count is
	// on rows kept after filtering, never on raw rows visited.
	MaxRows int

	// QuantityHint and UnitHint are free-text header hints that override the
	// keyword-detected quantity/unit columns. Only ExtractTransformed reads
	// them.
	QuantityHint string
	UnitHint     string
}

// RawResult is the raw extraction output: the filtered grid, unclassified.
type RawResult struct {
	FileName  string `json:"filename"`
	SheetName string `json:"sheet_name"`
	RowCount  int    `json:"row_count"`
	Rows      []Row  `json:"rows"`
}

// TransformedResult is the BOQ extraction output: resolved column roles,
// one classified line per surviving row, and the roll-up summary.
type TransformedResult struct {
	FileName    string      `json:"filename"`
	SheetName   string      `json:"sheet_name"`
	RowCount    int         `json:"row_count"`
	ColumnRoles ColumnRoles `json:"column_roles"`
	BoqLines    []BoqLine   `json:"boq_lines"`
	Summary     Summary     `json:"summary"`
}

// Extract decodes the workbook and returns its visible, non-empty rows.
func (s *Service) Extract(ctx context.Context, req ExtractRequest) (*RawResult, error) {
	data, err := s.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	return &RawResult{
		FileName:  req.FileName,
		SheetName: data.SheetName,
		RowCount:  data.RowCount,
		Rows:      data.Rows,
	}, nil
}

// ExtractTransformed decodes the workbook, detects column roles from the
// preview window, classifies every surviving row, and summarizes the
// qualifying lines.
func (s *Service) ExtractTransformed(ctx context.Context, req ExtractRequest) (*TransformedResult, error) {
	data, err := s.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	preview := data.Rows
	if len(preview) > PreviewRows {
		preview = preview[:PreviewRows]
	}
	roles := DetectColumnRoles(preview, req.QuantityHint, req.UnitHint)

	lines := make([]BoqLine, len(data.Rows))
	for i, row := range data.Rows {
		lines[i] = ClassifyRow(row, roles)
	}
	summary := Summarize(lines)

	logging.FromContext(ctx).Debug("rows classified",
		"rows", len(lines),
		"roles", len(roles),
		"total_quantity", summary.TotalQuantity,
		"total_weight_kg", summary.TotalWeightKg,
	)

	return &TransformedResult{
		FileName:    req.FileName,
		SheetName:   data.SheetName,
		RowCount:    data.RowCount,
		ColumnRoles: roles,
		BoqLines:    lines,
		Summary:     summary,
	}, nil
}

// decode acquires an extraction slot and runs the workbook adapter.
func (s *Service) decode(ctx context.Context, req ExtractRequest) (*SheetData, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	extractionID := uuid.NewString()
	log := logging.WithFields(ctx,
		"extraction_id", extractionID,
		"filename", req.FileName,
	)

	start := time.Now()
	data, err := DecodeVisibleRows(req.Content, ExtFromFilename(req.FileName), req.MaxRows)
	if err != nil {
		log.Warn("workbook rejected", "error", err)
		return nil, err
	}

	log.Info("workbook decoded",
		"sheet", data.SheetName,
		"rows", data.RowCount,
		"bytes", len(req.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}

// LimiterStatus exposes the extraction limiter state for health reporting.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForExtractions blocks until in-flight extractions finish or the
// context expires. Called during graceful shutdown.
func (s *Service) WaitForExtractions(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
