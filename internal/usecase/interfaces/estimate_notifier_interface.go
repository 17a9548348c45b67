package interfaces

import (
	"context"
	"furniture_estimates/internal/domain/entities"
)

// IEstimateNotifier pushes pipeline events to the connections of one user.
//
// Delivery is best effort. Implementations log and swallow their own
// failures and must not block the caller.
type IEstimateNotifier interface {
	PublishStatus(ctx context.Context, userID, status, message string)
	PublishResult(ctx context.Context, userID string, estimate entities.Estimate)
}
