// Package scnerr defines the flat error-code taxonomy shared by every
// scanning component. It exists as its own package so that internal/format,
// internal/buffer, internal/arg, internal/reader and internal/driver can
// all depend on the same error type without any of them depending on the
// root scn package (which in turn depends on all of them).
package scnerr

import "fmt"

// Code is one of the result codes listed in spec.md §6.
type Code int

const (
	CodeGood Code = iota
	CodeEndOfInput
	CodeInvalidScannedValue
	CodeInvalidLiteral
	CodeInvalidFill
	CodeLengthTooShort
	CodeInvalidFormatString
	CodeValuePositiveOverflow
	CodeValueNegativeOverflow
	CodeIOError
)

func (c Code) String() string {
	switch c {
	case CodeGood:
		return "good"
	case CodeEndOfInput:
		return "end_of_input"
	case CodeInvalidScannedValue:
		return "invalid_scanned_value"
	case CodeInvalidLiteral:
		return "invalid_literal"
	case CodeInvalidFill:
		return "invalid_fill"
	case CodeLengthTooShort:
		return "length_too_short"
	case CodeInvalidFormatString:
		return "invalid_format_string"
	case CodeValuePositiveOverflow:
		return "value_positive_overflow"
	case CodeValueNegativeOverflow:
		return "value_negative_overflow"
	case CodeIOError:
		return "io_error"
	default:
		return "unknown_error"
	}
}

// Error is the carrier returned by every fallible scanning operation. It is
// the Go-idiom substitute for the source's expected<T>-style carrier (see
// SPEC_FULL.md, "expected-style error carrier composition"): a plain error
// implementation with a stable Code for programmatic dispatch.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Msg
}

// New builds an *Error with a literal message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf builds an *Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// scanError is the panic payload Panic raises, mirroring fmt/scan.go's
// scanError type.
type scanError struct {
	err *Error
}

// Panic raises err as a recoverable scan error, for the rare call site that
// cannot return one normally (for example a length or index invariant
// violated deep inside a helper with no *Error in its own signature). Most
// of this module's call sites thread *Error through ordinary return values
// instead, since Go's multiple return values make that cheap; Panic exists
// for the exceptional case, not as the primary error-propagation mechanism.
func Panic(err *Error) {
	panic(scanError{err})
}

// Recover turns a scanError panic into a returned *Error, and any other
// panic value into a CodeIOError carrying the panic's message rather than
// letting it escape to the caller of a public entry point — the same
// outermost safety net fmt/scan.go's doScan installs with its own recover.
// It must be used in a deferred call: `defer scnerr.Recover(&err)`.
func Recover(errp **Error) {
	if e := recover(); e != nil {
		if se, ok := e.(scanError); ok {
			*errp = se.err
			return
		}
		*errp = Newf(CodeIOError, "internal error: %v", e)
	}
}
