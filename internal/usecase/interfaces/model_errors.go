package interfaces

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrModelUnavailable     = errors.New("vision model unavailable")
	ErrInvalidModelResponse = errors.New("invalid vision model response")
)

// ModelCallError is returned when the model endpoint answers with a non-2xx
// status or cannot be reached (Status == 0).
type ModelCallError struct {
	Provider string
	Status   int
	Body     string
	Cause    error
}

func (e *ModelCallError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s call failed: %v", e.Provider, e.Cause)
	case e.Body != "":
		return fmt.Sprintf("%s call failed: status %d: %s", e.Provider, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s call failed: status %d", e.Provider, e.Status)
	}
}

func (e *ModelCallError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrModelUnavailable, e.Cause}
	}
	return []error{ErrModelUnavailable}
}

// FieldError is one reason a model response was rejected.
type FieldError struct {
	Field   string
	Message string
}

// ResponseShapeError is returned when the model answered 2xx but the body,
// or the JSON it carries, does not match the expected shape.
type ResponseShapeError struct {
	Reason string
	Fields []FieldError
	Raw    string
}

func (e *ResponseShapeError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid model response")
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	for i, f := range e.Fields {
		if i == 0 {
			sb.WriteString(":")
		} else {
			sb.WriteString(";")
		}
		fmt.Fprintf(&sb, " %s: %s", f.Field, f.Message)
	}
	return sb.String()
}

func (e *ResponseShapeError) Unwrap() error {
	return ErrInvalidModelResponse
}
