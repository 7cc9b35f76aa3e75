package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	// ListByTournament returns all leagues of a tournament including their
	// ordered reward schedules.
	ListByTournament(ctx context.Context, tournamentID string) ([]League, error)
}
