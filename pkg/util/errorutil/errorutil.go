package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by services and the transport layer.
const (
	CodeNotFound                      = "NOT_FOUND"
	CodeAlreadyInState                = "ALREADY_IN_STATE"
	CodeInvalidRole                   = "INVALID_ROLE"
	CodeMissingVerificationSubmission = "MISSING_VERIFICATION_SUBMISSION"
	CodeEmptyPopulation               = "EMPTY_POPULATION"
	CodeStorageFailure                = "STORAGE_FAILURE"
	CodeValidationFailed              = "VALIDATION_FAILED"
	CodeUnauthorized                  = "UNAUTHORIZED"
	CodeForbidden                     = "FORBIDDEN"
	CodeInternal                      = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Any DomainError with the same Code matches.
var (
	ErrNotFound                      = &DomainError{Code: CodeNotFound}
	ErrAlreadyInState                = &DomainError{Code: CodeAlreadyInState}
	ErrInvalidRole                   = &DomainError{Code: CodeInvalidRole}
	ErrMissingVerificationSubmission = &DomainError{Code: CodeMissingVerificationSubmission}
	ErrEmptyPopulation               = &DomainError{Code: CodeEmptyPopulation}
	ErrStorageFailure                = &DomainError{Code: CodeStorageFailure}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewAlreadyInState reports a transition requested towards the state the
// resource is already in.
func NewAlreadyInState(message string, details map[string]any) error {
	return NewDomainError(CodeAlreadyInState, message, http.StatusConflict, details)
}

func NewInvalidRole(role string) error {
	return NewDomainError(CodeInvalidRole, "invalid role", http.StatusBadRequest, map[string]any{"role": role})
}

func NewMissingVerificationSubmission(role string) error {
	return NewDomainError(CodeMissingVerificationSubmission,
		fmt.Sprintf("%s verification ID not found", role),
		http.StatusBadRequest,
		map[string]any{"role": role})
}

func NewEmptyPopulation() error {
	return NewDomainError(CodeEmptyPopulation, "no users found", http.StatusBadRequest, nil)
}

// NewStorageFailure wraps a directory I/O error.
func NewStorageFailure(err error) error {
	return &DomainError{
		Code:       CodeStorageFailure,
		Message:    "user directory unavailable",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.HTTPStatus == 0 {
			cp := *domainErr
			cp.HTTPStatus = http.StatusInternalServerError
			return &cp
		}
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromStatus builds a DomainError for a bare HTTP status raised by the router.
func FromStatus(status int, message string) *DomainError {
	code := CodeInternal
	switch status {
	case http.StatusBadRequest:
		code = CodeValidationFailed
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound:
		code = CodeNotFound
	}
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}
