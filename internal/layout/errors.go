package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidParentWidth is returned by Resolver.Calc when the parent width is
// not a number, percentage or pixel value. No columns are resolved.
var ErrInvalidParentWidth = errors.New("invalid parent width")

// ErrMalformedWidth matches any *MalformedWidthError via errors.Is.
var ErrMalformedWidth = errors.New("malformed width")

// ParentWidthError carries the rejected parent width.
type ParentWidthError struct {
	Value string
}

func (e *ParentWidthError) Error() string {
	return fmt.Sprintf("invalid parent width: %q", e.Value)
}

func (e *ParentWidthError) Unwrap() error {
	return ErrInvalidParentWidth
}

// MalformedWidthError is returned by ParseWidth for text that is not a
// number, percentage or pixel value.
type MalformedWidthError struct {
	Value string
}

func (e *MalformedWidthError) Error() string {
	return fmt.Sprintf("malformed width: %q", e.Value)
}

func (e *MalformedWidthError) Unwrap() error {
	return ErrMalformedWidth
}

// DiagMalformedColumnWidth is the diagnostic code for a column whose width
// could not be parsed. The column is resolved as auto.
const DiagMalformedColumnWidth = "LAY002"

// Diagnostic is a non-fatal problem found while resolving a column.
type Diagnostic struct {
	Code    string `json:"code"`
	Index   int    `json:"index"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Key != "" {
		return fmt.Sprintf("%s: column %d (%s): %s", d.Code, d.Index, d.Key, d.Message)
	}
	return fmt.Sprintf("%s: column %d: %s", d.Code, d.Index, d.Message)
}
