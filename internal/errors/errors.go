package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Control configuration
	CodeConfigurationError Code = "configuration_error"

	// Catalog authoring errors. The offending entry is dropped and loading continues.
	CodeMalformedOption       Code = "malformed_option"
	CodeMissingOptionID       Code = "missing_option_id"
	CodeDuplicateOptionID     Code = "duplicate_option_id"
	CodeMultipleDefaultSelect Code = "multiple_default_selection"
	CodeUnknownOption         Code = "unknown_option"

	// Option sources
	CodeSourceFailed Code = "source_failed"
	CodeParseFailed  Code = "parse_failed"
	CodeNotFound     Code = "not_found"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface. The wrapped cause, if any, follows
// the message.
func (e Error) Error() string {
	if e.Message != "" && e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsAuthoring reports whether err is a recoverable catalog authoring error.
func IsAuthoring(err error) bool {
	switch CodeOf(err) {
	case CodeMalformedOption, CodeMissingOptionID, CodeDuplicateOptionID, CodeMultipleDefaultSelect:
		return true
	}
	return false
}
