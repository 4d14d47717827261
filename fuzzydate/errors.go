package fuzzydate

import "fmt"

// ErrorCode is the machine-readable classification of a datetime error.
type ErrorCode string

const (
	CodeFormat         ErrorCode = "FORMAT_ERROR"
	CodeValue          ErrorCode = "VALUE_ERROR"
	CodePrecision      ErrorCode = "PRECISION_ERROR"
	CodeTimezoneFormat ErrorCode = "TIMEZONE_FORMAT_ERROR"
	CodeTimezoneValue  ErrorCode = "TIMEZONE_VALUE_ERROR"
	CodeType           ErrorCode = "TYPE_ERROR"
)

// Sentinel errors for use with errors.Is. Each matches any *Error carrying
// the same code regardless of message or details.
var (
	ErrFormat         = &Error{Code: CodeFormat}
	ErrValue          = &Error{Code: CodeValue}
	ErrPrecision      = &Error{Code: CodePrecision}
	ErrTimezoneFormat = &Error{Code: CodeTimezoneFormat}
	ErrTimezoneValue  = &Error{Code: CodeTimezoneValue}
	ErrType           = &Error{Code: CodeType}
)

// Error is the structured error type for every failure in this package.
// It carries a machine-readable code and a details map with the original
// input and the offending field/value, so callers can build field-specific
// messages without re-parsing.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by code, so errors.Is(err, ErrFormat) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Detail returns a single entry from the details map.
func (e *Error) Detail(key string) (any, bool) {
	v, ok := e.Details[key]
	return v, ok
}

func newError(code ErrorCode, message string, details map[string]any) *Error {
	if details == nil {
		details = map[string]any{}
	}
	return &Error{Code: code, Message: message, Details: details}
}

func newFormatError(message string, details map[string]any) *Error {
	return newError(CodeFormat, message, details)
}

func newValueError(message string, details map[string]any) *Error {
	return newError(CodeValue, message, details)
}

func newPrecisionError(message string, details map[string]any) *Error {
	return newError(CodePrecision, message, details)
}

func newTimezoneFormatError(message string, details map[string]any) *Error {
	return newError(CodeTimezoneFormat, message, details)
}

func newTimezoneValueError(message string, details map[string]any) *Error {
	return newError(CodeTimezoneValue, message, details)
}

func newTypeError(message string, details map[string]any) *Error {
	return newError(CodeType, message, details)
}

// wrapTimezoneFormatError annotates a timezone sub-parse failure with the
// full source string it occurred in.
func wrapTimezoneFormatError(cause error, source, token string) *Error {
	e := newTimezoneFormatError(
		fmt.Sprintf("invalid timezone format %q in %q", token, source),
		map[string]any{"input": source, "timezone": token},
	)
	e.cause = cause
	return e
}
