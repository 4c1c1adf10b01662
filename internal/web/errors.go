package web

// errors.go provides unified error response handling for the web layer.
//
// Every failure path goes through respondError, which:
//   - Maps the technical error to a user-facing message via boq.MapError
//   - Logs the technical error with the request ID for correlation
//   - Picks the HTTP status from the mapped error code
//   - Writes a JSON body carrying code, message, and suggested action

import (
	"encoding/json"
	"net/http"

	"github.com/boqworks/boqx/internal/boq"
	"github.com/boqworks/boqx/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses. It carries
// both machine-readable (Code) and human-readable (Error, Action) fields.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// respondError maps err to a user message, logs the technical detail, and
// writes the JSON rejection.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := boq.MapError(err)
	status := statusForCode(userMsg.Code)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:  userMsg.Message,
		Action: userMsg.Action,
		Code:   userMsg.Code,
	}); err != nil {
		logging.FromContext(r.Context()).Error("json encode failed", "error", err)
	}
}

// statusForCode picks the HTTP status for a mapped error code. Rejections
// the caller can fix are 400s; saturation is 429; the rest is a 500.
func statusForCode(code string) int {
	switch code {
	case "EXT001", "WBK001", "FILE001", "FILE002", "FILE003":
		return http.StatusBadRequest
	case "UPL001", "RATE001":
		return http.StatusTooManyRequests
	case "UPL002":
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
