package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
