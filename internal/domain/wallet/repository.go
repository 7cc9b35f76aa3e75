package wallet

import "context"

// Repository describes wallet persistence needs from use cases.
type Repository interface {
	// ListByIDs bulk-loads accounts so the payout path never issues one query
	// per winner.
	ListByIDs(ctx context.Context, userIDs []string) ([]Account, error)
}
