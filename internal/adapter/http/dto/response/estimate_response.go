package response

import (
	"time"

	"furniture_estimates/internal/domain/entities"
)

type EstimateResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ImageURL     string    `json:"image_url"`
	Requirements string    `json:"requirements"`
	Price        float64   `json:"price"`
	Complexity   string    `json:"complexity"`
	Materials    []string  `json:"materials"`
	LaborHours   float64   `json:"labor_hours"`
	Explanation  string    `json:"explanation"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	materials := e.Materials
	if materials == nil {
		materials = []string{}
	}
	return EstimateResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		ImageURL:     e.ImageURL,
		Requirements: e.Requirements,
		Price:        e.Price,
		Complexity:   string(e.Complexity),
		Materials:    materials,
		LaborHours:   e.LaborHours,
		Explanation:  e.Explanation,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e))
	}
	return out
}

// AsyncAcceptedResponse is returned with 202 when the pipeline runs in the
// background. The outcome arrives on the two topics.
type AsyncAcceptedResponse struct {
	RequestID   string `json:"request_id"`
	Status      string `json:"status"`
	StatusTopic string `json:"status_topic"`
	ResultTopic string `json:"result_topic"`
}
