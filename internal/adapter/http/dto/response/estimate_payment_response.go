package response

import (
	"time"

	"furniture_estimates/internal/domain/entities"
)

type EstimatePaymentResponse struct {
	ID         string    `json:"id"`
	EstimateID string    `json:"estimate_id"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`

	MPPayloadRaw string         `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]any `json:"mp_payload,omitempty"`
}

func FromEstimatePayment(p entities.EstimatePayment) EstimatePaymentResponse {
	return EstimatePaymentResponse{
		ID:           p.ID,
		EstimateID:   p.EstimateID,
		Amount:       p.Amount,
		Date:         p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.ProviderPayloadRaw),
		MPPayload:    p.ProviderPayload,
	}
}

func FromEstimatePayments(list []entities.EstimatePayment) []EstimatePaymentResponse {
	out := make([]EstimatePaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromEstimatePayment(p))
	}
	return out
}
