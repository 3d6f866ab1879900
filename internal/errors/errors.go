package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes.
//
// Input errors are fatal to a run. Shape mismatches indicate a code or
// data-shape defect, never a data sparsity condition; sparse data is
// handled by the NoResult sentinel in domain/stats, not by errors.
const (
	CodeInputFileMissing = "INPUT_FILE_MISSING"
	CodeInputFileEmpty   = "INPUT_FILE_EMPTY"
	CodeInputUnsupported = "INPUT_UNSUPPORTED"
	CodeShapeMismatch    = "SHAPE_MISMATCH"
	CodeRenderFailed     = "RENDER_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors
func InputFileMissing(path string) *AppError {
	return New(CodeInputFileMissing, fmt.Sprintf("file not found: %s", path))
}

func InputFileEmpty(path string) *AppError {
	return New(CodeInputFileEmpty, fmt.Sprintf("file is empty: %s", path))
}

func InputUnsupported(path string) *AppError {
	return New(CodeInputUnsupported, fmt.Sprintf("unsupported input format: %s", path))
}

func ShapeMismatch(message string) *AppError {
	return New(CodeShapeMismatch, message)
}

func RenderFailed(chart string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailed,
		Message: fmt.Sprintf("failed to render %s", chart),
		Cause:   cause,
	}
}
