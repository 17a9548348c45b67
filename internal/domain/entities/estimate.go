package entities

import "time"

// EstimateStatus represents the lifecycle of a furniture estimate.
//
// Records are created as pending by the estimation pipeline. Only an
// administrator moves them to approved or rejected.
type EstimateStatus string

const (
	EstimateStatusPending  EstimateStatus = "pending"
	EstimateStatusApproved EstimateStatus = "approved"
	EstimateStatusRejected EstimateStatus = "rejected"
)

func (s EstimateStatus) Valid() bool {
	switch s {
	case EstimateStatusPending, EstimateStatusApproved, EstimateStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an estimate from s to next.
func (s EstimateStatus) CanTransitionTo(next EstimateStatus) bool {
	return s == EstimateStatusPending && (next == EstimateStatusApproved || next == EstimateStatusRejected)
}

type EstimateComplexity string

const (
	EstimateComplexitySimple  EstimateComplexity = "simple"
	EstimateComplexityMedium  EstimateComplexity = "medium"
	EstimateComplexityComplex EstimateComplexity = "complex"
)

func (c EstimateComplexity) Valid() bool {
	switch c {
	case EstimateComplexitySimple, EstimateComplexityMedium, EstimateComplexityComplex:
		return true
	}
	return false
}

// Estimate is the price assessment persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// Price, Complexity, Materials, LaborHours and Explanation are written once,
// together, from the model response. UserID, ImageURL and Requirements never
// change after creation.
type Estimate struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	ImageURL     string             `json:"image_url"`
	Requirements string             `json:"requirements"`
	Price        float64            `json:"price"`
	Complexity   EstimateComplexity `json:"complexity"`
	Materials    []string           `json:"materials"`
	LaborHours   float64            `json:"labor_hours"`
	Explanation  string             `json:"explanation"`
	Status       EstimateStatus     `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
