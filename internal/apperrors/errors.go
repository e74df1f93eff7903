package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMalformed indicates that a stored record exists but could not be decoded.
var ErrMalformed = errors.New("stored record is malformed")

// ErrInvalidCredentials is returned when a username/password pair is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated indicates a missing, expired or otherwise unusable session.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrUnsupportedType indicates an attachment that is not a single PDF file.
var ErrUnsupportedType = errors.New("unsupported attachment type")

// ErrAttachmentTooLarge indicates an attachment above the configured size limit.
var ErrAttachmentTooLarge = errors.New("attachment too large")

// ValidationError carries per-field messages keyed by field path
// (for example "expenses[0].lineAmount"). It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = fmt.Sprintf("%s: %s", p, e.Fields[p])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
