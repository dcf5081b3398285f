// Package errors provides standardized error types for the lookup engine and the API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code represents an error code.
type Code string

const (
	CodeInvalidTone         Code = "INVALID_TONE"
	CodeInvalidGroup        Code = "INVALID_GROUP"
	CodeMalformedSyllable   Code = "MALFORMED_SYLLABLE"
	CodeUnresolvedCharacter Code = "UNRESOLVED_CHARACTER"
	CodeAmbiguousCharacter  Code = "AMBIGUOUS_CHARACTER"
	CodeEmptyInput          Code = "EMPTY_INPUT"
	CodeInvalidRequest      Code = "INVALID_REQUEST"
	CodeNotFound            Code = "NOT_FOUND"
	CodeInternal            Code = "INTERNAL_ERROR"
	CodeRateLimited         Code = "RATE_LIMITED"
)

// APIError represents a structured error.
type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// Details carries optional structured context, e.g. the available finals.
	Details any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the status code a transport should answer with.
func (e *APIError) HTTPStatus() int {
	return StatusFor(e.Code)
}

// Common errors
var (
	ErrInternal    = &APIError{Code: CodeInternal, Message: "Internal server error"}
	ErrRateLimited = &APIError{Code: CodeRateLimited, Message: "Rate limit exceeded"}
)

// StatusFor maps an error code to an HTTP status.
func StatusFor(code Code) int {
	switch code {
	case CodeInvalidTone, CodeInvalidGroup, CodeMalformedSyllable, CodeEmptyInput, CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeUnresolvedCharacter, CodeAmbiguousCharacter:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the code of the first APIError in err's chain.
// Errors that are not APIErrors report CodeInternal.
func CodeOf(err error) Code {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// As converts any error to an APIError, hiding the message of unexpected ones.
func As(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal
}

// InvalidTone creates an error for a tone outside 1-9.
func InvalidTone(tone int) *APIError {
	return &APIError{
		Code:    CodeInvalidTone,
		Message: fmt.Sprintf("invalid tone %d: must be between 1 and 9", tone),
	}
}

// InvalidGroup creates an error for an unknown tone group id.
func InvalidGroup(group, system string) *APIError {
	return &APIError{
		Code:    CodeInvalidGroup,
		Message: fmt.Sprintf("unknown tone group %q for system %s", group, system),
	}
}

// MalformedSyllable creates an error for a romanized token that cannot be parsed.
func MalformedSyllable(syllable, reason string) *APIError {
	return &APIError{
		Code:    CodeMalformedSyllable,
		Message: fmt.Sprintf("malformed syllable %q: %s", syllable, reason),
	}
}

// UnresolvedCharacter creates an error for a character without a pronunciation.
func UnresolvedCharacter(char string) *APIError {
	return &APIError{
		Code:    CodeUnresolvedCharacter,
		Message: fmt.Sprintf("no pronunciation found for %q", char),
	}
}

// AmbiguousCharacter creates an error for a polyphonic character in strict mode.
func AmbiguousCharacter(char string, readings []string) *APIError {
	return &APIError{
		Code:    CodeAmbiguousCharacter,
		Message: fmt.Sprintf("%q has %d readings", char, len(readings)),
		Details: readings,
	}
}

// EmptyInput creates an error for a blank argument.
func EmptyInput(param string) *APIError {
	return &APIError{
		Code:    CodeEmptyInput,
		Message: fmt.Sprintf("%s must not be blank", param),
	}
}

// InvalidRequest creates a bad request error with a custom message.
func InvalidRequest(message string) *APIError {
	return &APIError{
		Code:    CodeInvalidRequest,
		Message: message,
	}
}

// NotFound creates a not found error with a custom message.
func NotFound(resource string) *APIError {
	return &APIError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Internal creates an internal error.
func Internal(message string) *APIError {
	if message == "" {
		message = "Internal server error"
	}
	return &APIError{
		Code:    CodeInternal,
		Message: message,
	}
}
