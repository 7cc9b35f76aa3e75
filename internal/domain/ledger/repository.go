package ledger

import "context"

// Repository describes ledger persistence needs from use cases.
type Repository interface {
	// ApplyPrize increments the winner's wallet balance with an atomic
	// server-side update AND appends the ledger entry, both inside one
	// storage transaction. A payout is never half-applied: either the
	// balance moved and the row exists, or neither happened.
	ApplyPrize(ctx context.Context, entry Entry) error

	// ListByUser returns a user's entries, newest first, for reconciliation.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}
