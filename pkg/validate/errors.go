package validate

import (
	"fmt"
	"strings"
)

// ErrorKind distinguishes validation failures so callers can route
// corrective feedback without parsing messages.
type ErrorKind string

const (
	KindMissing      ErrorKind = "missing"
	KindType         ErrorKind = "type"
	KindEnum         ErrorKind = "enum"
	KindRange        ErrorKind = "range"
	KindEmpty        ErrorKind = "empty"
	KindUnknownField ErrorKind = "unknown_field"
	KindInternal     ErrorKind = "internal"
)

// ValidationError describes exactly one schema violation: the offending
// tool, the offending field, a machine-readable kind, and a corrective
// message suitable for re-prompting the LLM.
type ValidationError struct {
	Tool    string    `json:"tool"`
	Field   string    `json:"field,omitempty"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Allowed []string  `json:"allowed,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("tool %q: %s", e.Tool, e.Message)
	}
	return fmt.Sprintf("tool %q: parameter %q %s", e.Tool, e.Field, e.Message)
}

func missingErr(tool, field string) *ValidationError {
	return &ValidationError{Tool: tool, Field: field, Kind: KindMissing, Message: "is required but missing"}
}

func typeErr(tool, field, wantType string) *ValidationError {
	return &ValidationError{Tool: tool, Field: field, Kind: KindType, Message: fmt.Sprintf("must be a %s", wantType)}
}

func enumErr(tool, field string, allowed []string) *ValidationError {
	return &ValidationError{
		Tool: tool, Field: field, Kind: KindEnum,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		Allowed: allowed,
	}
}

func rangeErr(tool, field string, min, max *float64) *ValidationError {
	msg := "is out of range"
	switch {
	case min != nil && max != nil:
		msg = fmt.Sprintf("must be between %v and %v", *min, *max)
	case min != nil:
		msg = fmt.Sprintf("must be >= %v", *min)
	case max != nil:
		msg = fmt.Sprintf("must be <= %v", *max)
	}
	return &ValidationError{Tool: tool, Field: field, Kind: KindRange, Message: msg}
}

func emptyErr(tool, field string) *ValidationError {
	return &ValidationError{Tool: tool, Field: field, Kind: KindEmpty, Message: "must not be empty"}
}

func unknownFieldErr(tool, field string) *ValidationError {
	return &ValidationError{Tool: tool, Field: field, Kind: KindUnknownField, Message: "is not a declared parameter"}
}
