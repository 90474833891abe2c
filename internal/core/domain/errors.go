package domain

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRateLimited        = errors.New("too many requests")
	ErrOriginNotAllowed   = errors.New("origin not allowed")
	ErrStorage            = errors.New("storage failure")
)

// ValidationError carries every rule a submission broke, in field order.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}
