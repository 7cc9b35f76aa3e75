package tournament

import (
	"context"
	"time"
)

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	// ListSettleable returns tournaments whose scheduled end has passed and
	// that no sweep has claimed yet (finishes_at <= now AND status = active).
	ListSettleable(ctx context.Context, now time.Time) ([]Tournament, error)

	// ClaimProcessing transitions active -> processing as a single conditional
	// write. It returns false when the row was not in active state anymore,
	// which is the expected outcome under concurrent sweeps, not an error.
	ClaimProcessing(ctx context.Context, tournamentID string) (bool, error)

	// MarkFinished transitions processing -> finished.
	MarkFinished(ctx context.Context, tournamentID string) error
}
