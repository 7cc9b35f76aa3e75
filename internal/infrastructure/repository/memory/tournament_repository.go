package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fairwaypot/settlement/internal/domain/tournament"
)

type TournamentRepository struct {
	mu     sync.Mutex
	items  map[string]tournament.Tournament
	orders []string
}

func NewTournamentRepository(tournaments []tournament.Tournament) *TournamentRepository {
	items := make(map[string]tournament.Tournament, len(tournaments))
	orders := make([]string, 0, len(tournaments))

	for _, t := range tournaments {
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &TournamentRepository{
		items:  items,
		orders: orders,
	}
}

func (r *TournamentRepository) ListSettleable(_ context.Context, now time.Time) ([]tournament.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]tournament.Tournament, 0, len(r.orders))
	for _, id := range r.orders {
		t := r.items[id]
		if t.Status == tournament.StatusActive && !t.FinishesAt.After(now) {
			out = append(out, t)
		}
	}

	return out, nil
}

// ClaimProcessing mirrors the conditional UPDATE the SQL repository issues:
// the transition succeeds only from active, under one lock, so exactly one
// caller wins per tournament.
func (r *TournamentRepository) ClaimProcessing(_ context.Context, tournamentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[tournamentID]
	if !ok || t.Status != tournament.StatusActive {
		return false, nil
	}

	t.Status = tournament.StatusProcessing
	r.items[tournamentID] = t
	return true, nil
}

func (r *TournamentRepository) MarkFinished(_ context.Context, tournamentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[tournamentID]
	if !ok {
		return nil
	}

	t.Status = tournament.StatusFinished
	r.items[tournamentID] = t
	return nil
}
