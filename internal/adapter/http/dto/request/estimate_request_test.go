package request

import (
	"errors"
	"testing"

	"furniture_estimates/internal/domain/entities"
)

func TestUpdateEstimateStatusRequest_ResolveStatus(t *testing.T) {
	r := UpdateEstimateStatusRequest{Status: " Approved "}
	if got := r.ResolveStatus(); got != entities.EstimateStatusApproved {
		t.Fatalf("expected approved, got %q", got)
	}

	r2 := UpdateEstimateStatusRequest{Status: "shipped"}
	if got := r2.ResolveStatus(); got.Valid() {
		t.Fatalf("expected invalid status, got %q", got)
	}
}

func TestResolvePayload(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		got, err := ResolvePayload([]byte("  "))
		if err != nil || string(got) != "{}" {
			t.Fatalf("expected {}, got %s err=%v", got, err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := ResolvePayload([]byte("{")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("envelope", func(t *testing.T) {
		got, err := ResolvePayload([]byte(`{"mp_payload":{"payment_method_id":"pix"}}`))
		if err != nil || string(got) != `{"payment_method_id":"pix"}` {
			t.Fatalf("unexpected payload %s err=%v", got, err)
		}
	})

	t.Run("null envelope", func(t *testing.T) {
		_, err := ResolvePayload([]byte(`{"mp_payload":null}`))
		if !errors.Is(err, ErrEmptyPaymentPayload) {
			t.Fatalf("expected ErrEmptyPaymentPayload, got %v", err)
		}
	})

	t.Run("bare body", func(t *testing.T) {
		body := `{"payment_method_id":"pix","payer":{"email":"a@b.c"}}`
		got, err := ResolvePayload([]byte(body))
		if err != nil || string(got) != body {
			t.Fatalf("unexpected payload %s err=%v", got, err)
		}
	})
}
