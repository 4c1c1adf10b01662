package boq

import (
	"errors"
	"fmt"
	"strings"
)

// AcceptedExtensions is the set of workbook file extensions the service
// decodes. Checked before any decoding attempt.
var AcceptedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls"}

// ErrUnsupportedExtension indicates the uploaded file's extension is outside
// the accepted set. The request is rejected before any decode attempt.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// ErrUnreadableWorkbook indicates the decoder rejected the byte stream
// (corruption, wrong format signature, password protection, ...).
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// unsupportedExtension wraps ErrUnsupportedExtension with the offending
// extension and the accepted set, for the rejection cause string.
func unsupportedExtension(ext string) error {
	return fmt.Errorf("%w: %q (accepted: %s)",
		ErrUnsupportedExtension, ext, strings.Join(AcceptedExtensions, ", "))
}

// unreadable wraps a decoder failure as ErrUnreadableWorkbook, preserving
// the decoder's cause in the message.
func unreadable(cause error) error {
	return fmt.Errorf("%w: %v", ErrUnreadableWorkbook, cause)
}

// unreadableMsg is unreadable for conditions detected by the adapter itself
// rather than reported by the decoder.
func unreadableMsg(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnreadableWorkbook, msg)
}
