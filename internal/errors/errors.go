// Package errors provides standardized error codes for termcore.
//
// Error codes follow the format {domain}.{error} where domain is the
// subsystem that generated the error (grid, vt, session) and error is the
// specific error type within that domain. These codes are stable and can be
// relied on by a foreign-language bridge for programmatic error handling.
// Human-readable messages are provided alongside codes.
package errors

import (
	"errors"
	"fmt"
)

// Error codes by domain. These are stable identifiers a caller can switch
// on without parsing message text.
const (
	// Grid domain - dimension and geometry errors.
	CodeGridInvalidDimensions = "grid.invalid_dimensions" // rows/cols out of range

	// VT domain - parser construction and decode errors.
	CodeVTParserInitFailed = "vt.parser_init_failed" // decoder failed to initialize

	// Session domain - PTY lifecycle and I/O errors.
	CodeSessionAlreadyRunning = "session.already_running" // start_pty called while running
	CodeSessionNotRunning     = "session.not_running"     // resize/write called while idle
	CodeSessionStartFailed    = "session.start_failed"    // pty.Start failed
	CodeSessionWriteFailed    = "session.write_failed"    // write to the PTY master failed
	CodeSessionIOError        = "session.io_error"         // PTY read failed outside of EOF, or resize failed
	CodeSessionChildExited    = "session.child_exited"     // child process exited

	// General domain - catch-all.
	CodeUnknown  = "error.unknown"  // Unknown error
	CodeInternal = "error.internal" // Internal error
)

// CodedError wraps an error with a stable error code.
// This allows errors to carry both a code for programmatic handling
// and a message for human consumption.
type CodedError struct {
	Code    string // Stable error code (e.g., "session.not_running")
	Message string // Human-readable error message
	Cause   error  // Underlying error (may be nil)
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CodedError) Unwrap() error {
	return e.Cause
}

// New creates a new CodedError with the given code and message.
func New(code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// Wrap creates a new CodedError wrapping an existing error.
func Wrap(code, message string, cause error) *CodedError {
	return &CodedError{Code: code, Message: message, Cause: cause}
}

// GetCode extracts the error code from an error.
// If the error is a CodedError, returns its code.
// Falls back to CodeUnknown for unrecognized errors.
func GetCode(err error) string {
	if err == nil {
		return ""
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}

// GetMessage extracts a human-readable message from an error.
// If the error is a CodedError, returns its message.
// Otherwise, returns the error's Error() string.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}

// ToCodeAndMessage extracts both code and message from an error.
// This is the primary function for converting errors to bridge responses.
func ToCodeAndMessage(err error) (code, message string) {
	if err == nil {
		return "", ""
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code, coded.Message
	}
	return CodeUnknown, err.Error()
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}

// InvalidDimensions creates a "grid.invalid_dimensions" error.
func InvalidDimensions(rows, cols int) *CodedError {
	return New(CodeGridInvalidDimensions, fmt.Sprintf("invalid dimensions %dx%d: rows and cols must be positive", rows, cols))
}

// ParserInitFailed creates a "vt.parser_init_failed" error.
func ParserInitFailed(cause error) *CodedError {
	return Wrap(CodeVTParserInitFailed, "vt parser failed to initialize", cause)
}

// AlreadyRunning creates a "session.already_running" error.
func AlreadyRunning() *CodedError {
	return New(CodeSessionAlreadyRunning, "pty session is already running")
}

// NotRunning creates a "session.not_running" error.
func NotRunning() *CodedError {
	return New(CodeSessionNotRunning, "pty session is not running")
}

// PtyStartFailed creates a "session.start_failed" error.
func PtyStartFailed(cause error) *CodedError {
	return Wrap(CodeSessionStartFailed, "failed to start pty session", cause)
}

// WriteFailed creates a "session.write_failed" error.
func WriteFailed(cause error) *CodedError {
	return Wrap(CodeSessionWriteFailed, "failed to write input to pty", cause)
}

// PtyIOError creates a "session.io_error" error.
func PtyIOError(cause error) *CodedError {
	return Wrap(CodeSessionIOError, "pty read failed", cause)
}

// ChildExited creates a "session.child_exited" error.
func ChildExited() *CodedError {
	return New(CodeSessionChildExited, "pty child process has exited")
}

// Internal creates an "error.internal" error.
func Internal(message string, cause error) *CodedError {
	return Wrap(CodeInternal, message, cause)
}
