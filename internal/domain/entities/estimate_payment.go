package entities

import (
	"encoding/json"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// EstimatePayment is a deposit charged against an approved estimate.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI1 (estimate_id-index): estimate_id
//
// ProviderPayloadRaw keeps the gateway response body as received.
type EstimatePayment struct {
	ID         string        `json:"id"`
	EstimateID string        `json:"estimate_id"`
	UserID     string        `json:"user_id"`
	Amount     float64       `json:"amount"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any  `json:"provider_payload,omitempty"`
}
