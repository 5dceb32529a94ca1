package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrSyntax indicates a malformed PubMed query. Reported to the user
	// before any network call, never retried.
	ErrSyntax = errors.New("query syntax error")

	// ErrUnsupportedConstruct indicates a valid PubMed construct with no
	// Embase equivalent.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrSourceUnavailable indicates a transient or network failure of one
	// literature database.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrQueryRejected indicates the remote API rejected the query string.
	ErrQueryRejected = errors.New("query rejected")

	// ErrMalformedRecord indicates a raw hit missing its identifying field.
	ErrMalformedRecord = errors.New("malformed record")
)

// SyntaxError describes where and why a query failed to parse or validate.
type SyntaxError struct {
	// Pos is the byte offset into the raw query where the problem was
	// detected, or -1 when the error is not positional (e.g. tree depth).
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// UnsupportedConstructError identifies the PubMed field tag that has no
// Embase mapping.
type UnsupportedConstructError struct {
	Tag string
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("no Embase equivalent for PubMed field tag [%s]", e.Tag)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *UnsupportedConstructError) Unwrap() error {
	return ErrUnsupportedConstruct
}

// SourceUnavailableError describes a transient failure of one source.
type SourceUnavailableError struct {
	Source Source
	Cause  error
}

// Error implements the error interface.
func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source.DisplayName(), e.Cause)
}

// Unwrap returns the sentinel and the cause so errors.Is matches both.
func (e *SourceUnavailableError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Cause}
}

// QueryRejectedError describes a query the remote API refused to execute.
type QueryRejectedError struct {
	Source     Source
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *QueryRejectedError) Error() string {
	return fmt.Sprintf("%s rejected query (status %d): %s", e.Source.DisplayName(), e.StatusCode, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *QueryRejectedError) Unwrap() error {
	return ErrQueryRejected
}

// MalformedRecordError describes a single unidentifiable hit. Such hits are
// skipped with a count reported; they never fail the whole search.
type MalformedRecordError struct {
	Source Source
	Reason string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: %s", e.Source.DisplayName(), e.Reason)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// NewSyntaxError creates a new SyntaxError at the given offset.
func NewSyntaxError(pos int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewSourceUnavailableError creates a new SourceUnavailableError.
func NewSourceUnavailableError(source Source, cause error) *SourceUnavailableError {
	return &SourceUnavailableError{
		Source: source,
		Cause:  cause,
	}
}

// NewQueryRejectedError creates a new QueryRejectedError.
func NewQueryRejectedError(source Source, statusCode int, message string) *QueryRejectedError {
	return &QueryRejectedError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewMalformedRecordError creates a new MalformedRecordError.
func NewMalformedRecordError(source Source, reason string) *MalformedRecordError {
	return &MalformedRecordError{
		Source: source,
		Reason: reason,
	}
}
