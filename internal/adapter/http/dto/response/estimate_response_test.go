package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"furniture_estimates/internal/domain/entities"
)

func TestFromEstimate(t *testing.T) {
	now := time.Now().UTC()
	e := entities.Estimate{
		ID:         "est-1",
		UserID:     "U",
		Price:      99.9,
		Complexity: entities.EstimateComplexitySimple,
		LaborHours: 3,
		Status:     entities.EstimateStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res := FromEstimate(e)
	if res.ID != "est-1" || res.UserID != "U" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Price != 99.9 || res.Status != "pending" || res.Complexity != "simple" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.Materials == nil {
		t.Fatalf("materials must serialize as an empty list")
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"materials":[]`) || !strings.Contains(string(b), `"labor_hours":3`) {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestFromEstimates(t *testing.T) {
	if got := FromEstimates(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	got := FromEstimates([]entities.Estimate{{ID: "a"}, {ID: "b"}})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestFromEstimatePayment(t *testing.T) {
	now := time.Now().UTC()
	raw := json.RawMessage(`{"id":123}`)

	p := entities.EstimatePayment{
		ID:                 "pay-1",
		EstimateID:         "est-1",
		Amount:             175,
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: raw,
		ProviderPayload:    map[string]any{"a": "b"},
	}

	res := FromEstimatePayment(p)
	if res.ID != "pay-1" || res.EstimateID != "est-1" || res.Status != "approved" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.Date.Equal(now) || res.Amount != 175 {
		t.Fatalf("unexpected values: %+v", res)
	}
	if res.MPPayloadRaw != string(raw) || res.MPPayload["a"] != "b" {
		t.Fatalf("unexpected payload: %+v", res)
	}
	if len(FromEstimatePayments([]entities.EstimatePayment{p, p})) != 2 {
		t.Fatalf("expected two payments")
	}
}
