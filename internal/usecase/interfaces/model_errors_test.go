package interfaces

import (
	"context"
	"errors"
	"testing"
)

func TestModelCallErrorUnwrap(t *testing.T) {
	err := error(&ModelCallError{Provider: "groq", Status: 503})
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable")
	}
	if err.Error() != "groq call failed: status 503" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	timeout := error(&ModelCallError{Provider: "groq", Cause: context.DeadlineExceeded})
	if !errors.Is(timeout, context.DeadlineExceeded) || !errors.Is(timeout, ErrModelUnavailable) {
		t.Fatalf("expected both cause and sentinel in chain")
	}
}

func TestResponseShapeErrorMessage(t *testing.T) {
	err := &ResponseShapeError{Fields: []FieldError{
		{Field: "price", Message: "price is required"},
		{Field: "complexity", Message: "must be one of the following"},
	}}
	want := "invalid model response: price: price is required; complexity: must be one of the following"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, ErrInvalidModelResponse) {
		t.Fatalf("expected ErrInvalidModelResponse")
	}
}
