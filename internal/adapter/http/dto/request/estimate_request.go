package request

import (
	"strings"

	"furniture_estimates/internal/domain/entities"
)

// UpdateEstimateStatusRequest is the admin review payload.
type UpdateEstimateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateEstimateStatusRequest) ResolveStatus() entities.EstimateStatus {
	return entities.EstimateStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}
