// Package boq error mapping.
//
// # Error Codes Reference
//
// User-facing errors carry a short code that can be quoted to support staff.
//
// # Workbook Errors (EXT001, WBK001)
//
//	EXT001 - Unsupported extension: file type is not an Excel workbook
//	         Action: Upload a .xlsx, .xlsm, .xltx, .xltm, or .xls file
//	         Matched via errors.Is(err, ErrUnsupportedExtension)
//
//	WBK001 - Unreadable workbook: the decoder rejected the byte stream
//	         Action: Re-export the file from Excel and try again
//	         Matched via errors.Is(err, ErrUnreadableWorkbook)
//
// # File Errors (FILE001-FILE003)
//
//	FILE001 - File too large          Patterns: "file too large"
//	FILE002 - No file provided        Patterns: "no file provided"
//	FILE003 - Invalid max_rows value  Patterns: "invalid max_rows"
//
// # Request Errors (UPL001-UPL002, RATE001)
//
//	UPL001  - Too many extractions    Matched via ErrTooManyExtractions
//	UPL002  - Request cancelled/timed out
//	          Patterns: "context canceled", "context deadline exceeded"
//	RATE001 - Rate limited            Patterns: "rate limit"
//
// # Default (SRV000)
//
//	SRV000 - Unexpected error. Check application logs for the original
//	         technical error.
//
// String patterns are matched case-insensitively with strings.Contains;
// sentinel errors are matched first with errors.Is.
package boq

import (
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// sentinelMessages maps the package's terminal errors to user messages.
// Checked with errors.Is before any string matching.
var sentinelMessages = []struct {
	target error
	msg    UserMessage
}{
	{
		target: ErrUnsupportedExtension,
		msg: UserMessage{
			Message: "The file is not a supported Excel workbook",
			Action:  "Upload a .xlsx, .xlsm, .xltx, .xltm, or .xls file",
			Code:    "EXT001",
		},
	},
	{
		target: ErrUnreadableWorkbook,
		msg: UserMessage{
			Message: "The workbook could not be read",
			Action:  "Re-export the file from Excel and try again",
			Code:    "WBK001",
		},
	},
	{
		target: ErrTooManyExtractions,
		msg: UserMessage{
			Message: "Too many extractions are running",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
}

// errorPattern defines a substring to match and its corresponding message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user
// messages. First match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused sheets or split the workbook",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Attach an Excel workbook in the 'file' field",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid max_rows",
		msg: UserMessage{
			Message: "max_rows must be a positive integer",
			Action:  "Fix the max_rows parameter or omit it",
			Code:    "FILE003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "SRV000",
}

// MapError converts a technical error into a user-facing message with a
// support code. Returns the zero UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	errText := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errText, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}
