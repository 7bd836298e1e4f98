package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidInput indicates the document could not be decoded
	InvalidInput ErrorCode = "INVALID_INPUT"
	// UnsupportedFormat indicates an unknown input or output format name
	UnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// DepthExceeded indicates the document nests deeper than the configured bound
	DepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// IOError indicates reading the input or writing the output failed
	IOError ErrorCode = "IO_ERROR"
	// ConfigInvalid indicates the configuration file or environment is unusable
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// ChangeFlag suggests re-running with a different flag value
	ChangeFlag FixActionType = "change-flag"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Flag        string        `json:"flag,omitempty"`
	Description string        `json:"description,omitempty"`
}

// EngulfError represents an error with code, message, and suggestions
type EngulfError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewEngulfError creates a new EngulfError
func NewEngulfError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *EngulfError {
	return &EngulfError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Wrap creates an EngulfError carrying the default fixes for its code.
func Wrap(code ErrorCode, message string, cause error) *EngulfError {
	return NewEngulfError(code, message, cause, GetSuggestedFixes(code))
}

// Error implements the error interface
func (e *EngulfError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngulfError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *EngulfError) WithDetails(details interface{}) *EngulfError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first EngulfError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var ee *EngulfError
	if stderrors.As(err, &ee) {
		return ee.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	InvalidInput: {
		{
			Type:        ChangeFlag,
			Flag:        "--input-format",
			Description: "Select the matching decoder (cbor, json, jsonc, toml, yaml)",
		},
	},
	DepthExceeded: {
		{
			Type:        ChangeFlag,
			Flag:        "--max-depth",
			Description: "Raise the depth bound, or set it to 0 to disable it",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "engulf config show",
			Description: "Inspect the effective configuration",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
