package bib

import "fmt"

// MissingFieldError is returned by the strict field accessor when the
// requested field is absent from an entry.
type MissingFieldError struct {
	Key   string // entry key, may be empty for unkeyed entries
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("entry %q: missing field %q", e.Key, e.Field)
}

// InvalidFieldError reports a validator rejection on field assignment.
// The entry is left unchanged.
type InvalidFieldError struct {
	Field string
	Value string
	Err   error // underlying cause, may be nil
}

func (e *InvalidFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid value for field %q: %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid value for field %q: %q", e.Field, e.Value)
}

func (e *InvalidFieldError) Unwrap() error { return e.Err }

// InvalidAuthorError reports an author segment that could not be
// parsed.
type InvalidAuthorError struct {
	Raw string
}

func (e *InvalidAuthorError) Error() string {
	return fmt.Sprintf("invalid author name: %q", e.Raw)
}

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks advisory diagnostics such as duplicate
	// keys or missing required fields.
	SeverityWarning Severity = iota
	// SeverityError marks diagnostics that made part of the input
	// unusable, such as a syntax error in one entry.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem. Diagnostics are data: the core
// never prints them, the host decides how to surface them.
type Diagnostic struct {
	Severity Severity
	Line     int // 1-based source line, 0 when not positional
	Col      int // 1-based source column, 0 when not positional
	Message  string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", d.Severity, d.Line, d.Col, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}
