package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)

	// UpdatePosition stores a team's final rank. Each settlement run writes a
	// distinct team row, so these updates are safe to issue concurrently.
	UpdatePosition(ctx context.Context, teamID string, position int) error
}
