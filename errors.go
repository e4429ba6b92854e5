package scn

import "github.com/eliaskosunen/scn-go/internal/scnerr"

// Code is one of the flat result codes listed in spec.md §6.
type Code = scnerr.Code

// Error is the error type returned by every fallible operation in this
// package: a Code plus an optional descriptive message.
type Error = scnerr.Error

const (
	CodeGood                  = scnerr.CodeGood
	CodeEndOfInput            = scnerr.CodeEndOfInput
	CodeInvalidScannedValue   = scnerr.CodeInvalidScannedValue
	CodeInvalidLiteral        = scnerr.CodeInvalidLiteral
	CodeInvalidFill           = scnerr.CodeInvalidFill
	CodeLengthTooShort        = scnerr.CodeLengthTooShort
	CodeInvalidFormatString   = scnerr.CodeInvalidFormatString
	CodeValuePositiveOverflow = scnerr.CodeValuePositiveOverflow
	CodeValueNegativeOverflow = scnerr.CodeValueNegativeOverflow
	CodeIOError               = scnerr.CodeIOError
)
