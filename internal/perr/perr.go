// Package perr defines the domain error taxonomy shared across pounce.
//
// Every failure in the core maps to one of a small set of codes. None of
// them is fatal to the process: permission and hotkey-registration failures
// are surfaced to the user, everything else degrades to an empty result or
// a no-op.
package perr

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodePermissionDenied indicates accessibility access is unauthorized.
	// Discovery returns an empty result; the caller decides whether to prompt.
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// CodeElementUnavailable indicates a stale or released element handle
	// was used. Such elements are dropped silently from results.
	CodeElementUnavailable Code = "ELEMENT_UNAVAILABLE"

	// CodeHotkeyConflict indicates a hotkey registration collision.
	CodeHotkeyConflict Code = "HOTKEY_CONFLICT"

	// CodeParse indicates a malformed key specification.
	CodeParse Code = "PARSE_ERROR"

	// CodeRenderTargetGone indicates the overlay surface was destroyed
	// mid-operation. Further draw calls become no-ops.
	CodeRenderTargetGone Code = "RENDER_TARGET_GONE"

	// CodeInvalidConfig indicates configuration validation failed.
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// CodeInvalidInput indicates invalid input parameters.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeIPCFailed indicates control-channel communication failed.
	CodeIPCFailed Code = "IPC_FAILED"

	// CodeActionFailed indicates pointer action execution failed.
	CodeActionFailed Code = "ACTION_FAILED"

	// CodeInternal indicates an unexpected internal error.
	CodeInternal Code = "INTERNAL"
)

// Error is a domain error carrying a code, a message, and an optional cause.
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error wrapping an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{code: code, message: message, cause: cause}
}

// Code returns the error code.
func (e *Error) Code() Code {
	return e.code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a domain error with the same code.
// This lets callers use errors.Is with a bare New(code, "") sentinel.
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.code == de.code
}

// CodeOf extracts the domain code from err, or CodeInternal if err is not
// a domain error. Returns an empty code for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given domain code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsPermissionDenied reports whether err is a permission failure.
func IsPermissionDenied(err error) bool {
	return HasCode(err, CodePermissionDenied)
}

// IsHotkeyConflict reports whether err is a hotkey registration collision.
func IsHotkeyConflict(err error) bool {
	return HasCode(err, CodeHotkeyConflict)
}

// IsParse reports whether err is a key-spec parse failure.
func IsParse(err error) bool {
	return HasCode(err, CodeParse)
}
