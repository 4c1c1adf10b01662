package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boqworks/boqx/internal/boq"
	"github.com/boqworks/boqx/internal/config"
	"github.com/xuri/excelize/v2"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 30 * time.Second,
		},
		Upload: config.UploadConfig{
			MaxFileSize:   10 << 20,
			MaxConcurrent: 2,
			MaxWaitTime:   time.Second,
		},
		Rate: config.RateLimitConfig{Enabled: false},
		Security: config.SecurityConfig{
			EnableCSP: true,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			MaxAge:         300,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	return NewServer(boq.NewService(cfg), cfg)
}

// sampleWorkbook builds a small BOQ sheet: a header row with a quantity
// column and one data row with an article code.
func sampleWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "B1", "Qté")
	f.SetCellValue("Sheet1", "A2", "Excavation terrassement")
	f.SetCellValue("Sheet1", "B2", 12.5)
	f.SetCellValue("Sheet1", "C2", "003.001.")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// multipartUpload builds a multipart body with a file part and extra fields.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func doUpload(t *testing.T, srv *Server, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartUpload(t, filename, content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	payload := decodeBody(t, rec)
	if payload["status"] != "ok" {
		t.Errorf("status field = %v, want ok", payload["status"])
	}
	if _, ok := payload["extractions"]; !ok {
		t.Error("extractions field missing")
	}
}

func TestParseExcel(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel", "boq.xlsx", sampleWorkbook(t), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	payload := decodeBody(t, rec)
	if payload["filename"] != "boq.xlsx" {
		t.Errorf("filename = %v", payload["filename"])
	}
	if payload["sheet_name"] != "Sheet1" {
		t.Errorf("sheet_name = %v", payload["sheet_name"])
	}
	if payload["row_count"] != 2.0 {
		t.Errorf("row_count = %v, want 2", payload["row_count"])
	}
	rows, ok := payload["rows"].([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("rows = %v", payload["rows"])
	}
}

func TestParseExcelTransformed(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel_transformed", "boq.xlsx", sampleWorkbook(t), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	payload := decodeBody(t, rec)

	roles, ok := payload["column_roles"].(map[string]any)
	if !ok {
		t.Fatalf("column_roles = %v", payload["column_roles"])
	}
	if roles["quantity"] != "B" {
		t.Errorf("quantity role = %v, want B", roles["quantity"])
	}

	lines, ok := payload["boq_lines"].([]any)
	if !ok || len(lines) != 2 {
		t.Fatalf("boq_lines = %v", payload["boq_lines"])
	}
	line := lines[1].(map[string]any)
	if line["is_boq_line"] != true {
		t.Errorf("is_boq_line = %v", line["is_boq_line"])
	}
	if line["article_code"] != "003.001." {
		t.Errorf("article_code = %v", line["article_code"])
	}
	if line["quantity"] != 12.5 {
		t.Errorf("quantity = %v", line["quantity"])
	}

	summary := payload["summary"].(map[string]any)
	if summary["total_quantity"] != 12.5 {
		t.Errorf("total_quantity = %v", summary["total_quantity"])
	}
}

func TestParseExcelTransformed_HeaderHints(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "B1", "Qté")
	f.SetCellValue("Sheet1", "C1", "Aantal")
	f.SetCellValue("Sheet1", "A2", "Grondwerken algemeen")
	f.SetCellValue("Sheet1", "C2", 4)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel_transformed", "boq.xlsx", buf.Bytes(), map[string]string{
		"quantity_header_hint": "Aantal",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	payload := decodeBody(t, rec)
	roles := payload["column_roles"].(map[string]any)
	if roles["quantity"] != "C" {
		t.Errorf("quantity role = %v, want C (hint override)", roles["quantity"])
	}
}

func TestParseExcel_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel", "report.pdf", []byte("%PDF-1.7"), nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["code"] != "EXT001" {
		t.Errorf("code = %v, want EXT001", payload["code"])
	}
}

func TestParseExcel_CorruptWorkbook(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel", "boq.xlsx", []byte("not a workbook"), nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["code"] != "WBK001" {
		t.Errorf("code = %v, want WBK001", payload["code"])
	}
}

func TestParseExcel_NoFile(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel", "", nil, map[string]string{"max_rows": "5"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["code"] != "FILE002" {
		t.Errorf("code = %v, want FILE002", payload["code"])
	}
}

func TestParseExcel_InvalidMaxRows(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, raw := range []string{"abc", "0", "-3"} {
		rec := doUpload(t, srv, "/parse_excel", "boq.xlsx", sampleWorkbook(t), map[string]string{
			"max_rows": raw,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("max_rows=%q: status = %d, want 400", raw, rec.Code)
			continue
		}
		if payload := decodeBody(t, rec); payload["code"] != "FILE003" {
			t.Errorf("max_rows=%q: code = %v, want FILE003", raw, payload["code"])
		}
	}
}

func TestParseExcel_MaxRows(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doUpload(t, srv, "/parse_excel", "boq.xlsx", sampleWorkbook(t), map[string]string{
		"max_rows": "1",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["row_count"] != 1.0 {
		t.Errorf("row_count = %v, want 1", payload["row_count"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy missing")
	}
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"test-key"}
	srv := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-API-Key", "test-key")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid key: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterStop(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	rl.stop()
	rl.stop() // idempotent

	select {
	case <-rl.stopCh:
	default:
		t.Error("stop channel not closed")
	}
	if !rl.allow("10.0.0.1") {
		t.Error("stopped limiter rejects requests")
	}
}

func TestShutdownStopsRateLimiters(t *testing.T) {
	cfg := testConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 100
	cfg.Rate.UploadLimit = 20
	srv := newTestServer(t, cfg)

	if len(srv.limiters) != 2 {
		t.Fatalf("limiters = %d, want 2", len(srv.limiters))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	for i, rl := range srv.limiters {
		select {
		case <-rl.stopCh:
		default:
			t.Errorf("limiter %d still running after Shutdown", i)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	if !rl.allow("10.0.0.1") || !rl.allow("10.0.0.1") {
		t.Fatal("first two requests denied")
	}
	if rl.allow("10.0.0.1") {
		t.Error("third request allowed within window")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("separate IP sharing a bucket")
	}
}
