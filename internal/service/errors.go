package service

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrReaderNil  = errors.New("reader is nil")

	// ErrNotFound covers both absence and non-ownership of owner-scoped
	// resources. The two are intentionally indistinguishable so callers cannot
	// probe for existence of documents they do not own.
	ErrNotFound = errors.New("document not found")

	ErrLinkNotFound     = errors.New("link not found")
	ErrLinkExpired      = errors.New("link has expired")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrAliasConflict    = errors.New("alias is already taken for this document")
	ErrExpirationInPast = errors.New("expiration time cannot be in the past")
	ErrInvalidEventType = errors.New("invalid analytics event type")
)

// ValidationError reports malformed or missing input, scoped per field so the
// caller can surface the offending field(s) rather than a generic failure.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
