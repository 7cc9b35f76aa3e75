package memory

import (
	"context"
	"sync"

	"github.com/fairwaypot/settlement/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[string]team.Team
	orders []string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	orders := make([]string, 0, len(teams))

	for _, t := range teams {
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &TeamRepository{
		items:  items,
		orders: orders,
	}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.orders))
	for _, id := range r.orders {
		if t := r.items[id]; t.LeagueID == leagueID {
			out = append(out, t)
		}
	}

	return out, nil
}

func (r *TeamRepository) UpdatePosition(_ context.Context, teamID string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return nil
	}

	t.Position = position
	r.items[teamID] = t
	return nil
}
