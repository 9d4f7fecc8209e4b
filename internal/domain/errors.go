package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Generation pipeline errors
	CodeContentTooLarge       ErrorCode = "CONTENT_TOO_LARGE"
	CodeParseError            ErrorCode = "PARSE_ERROR"
	CodeProviderError         ErrorCode = "PROVIDER_ERROR"
	CodeAllBatchesFailed      ErrorCode = "ALL_BATCHES_FAILED"
	CodeValidationUnavailable ErrorCode = "VALIDATION_UNAVAILABLE"
	CodeExtractionError       ErrorCode = "EXTRACTION_ERROR"
	CodeUnknownProvider       ErrorCode = "UNKNOWN_PROVIDER"

	// Quiz storage errors
	CodeQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper constructors for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

// NewContentTooLargeError signals that a document exceeds the extraction
// ceiling. It routes generation onto the concept-extraction path; it is not
// a user-facing failure.
func NewContentTooLargeError(length, ceiling int) *DomainError {
	return NewError(CodeContentTooLarge,
		fmt.Sprintf("Extracted content length %d exceeds ceiling %d", length, ceiling), nil)
}

// NewParseError signals that a model response had no locatable structured
// payload, or that the payload failed schema validation.
func NewParseError(reason string, cause error) *DomainError {
	return NewError(CodeParseError, fmt.Sprintf("Failed to parse model response: %s", reason), cause)
}

// NewProviderError wraps a network, auth or quota failure from a model call.
func NewProviderError(providerID string, cause error) *DomainError {
	return NewError(CodeProviderError, fmt.Sprintf("Provider %s call failed", providerID), cause)
}

// NewAllBatchesFailedError is the only fatal condition of the batching path:
// every batch failed and zero questions were produced.
func NewAllBatchesFailedError(batches int) *DomainError {
	return NewError(CodeAllBatchesFailed,
		fmt.Sprintf("All %d generation batches failed; no questions produced", batches), nil)
}

// NewValidationUnavailableError wraps a failed validation call. Generation
// results must still be returned to the caller.
func NewValidationUnavailableError(cause error) *DomainError {
	return NewError(CodeValidationUnavailable, "Quiz validation is unavailable", cause)
}

func NewExtractionError(source string, cause error) *DomainError {
	return NewError(CodeExtractionError, fmt.Sprintf("Failed to extract text from %s", source), cause)
}

func NewUnknownProviderError(providerID string) *DomainError {
	return NewError(CodeUnknownProvider, fmt.Sprintf("Unknown provider: %s", providerID), nil)
}

// ValidationError represents a single request-field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of field validation failures
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max),
	}
}

func NewInvalidValueError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("invalid value: %s", value)}
}
