package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/ledger"
	"github.com/fairwaypot/settlement/internal/domain/player"
	"github.com/fairwaypot/settlement/internal/domain/team"
	"github.com/fairwaypot/settlement/internal/domain/tournament"
	"github.com/fairwaypot/settlement/internal/domain/wallet"
)

type stubTournamentRepository struct {
	mu       sync.Mutex
	items    map[string]tournament.Tournament
	listErr  error
	claimErr error
	finErr   error
	// beforeClaim runs ahead of the conditional update, for simulating a
	// rival worker claiming between discovery and our CAS.
	beforeClaim func()
}

func newStubTournamentRepository(items ...tournament.Tournament) *stubTournamentRepository {
	byID := make(map[string]tournament.Tournament, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &stubTournamentRepository{items: byID}
}

func (r *stubTournamentRepository) ListSettleable(_ context.Context, now time.Time) ([]tournament.Tournament, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		if item.Status == tournament.StatusActive && !item.FinishesAt.After(now) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTournamentRepository) ClaimProcessing(_ context.Context, tournamentID string) (bool, error) {
	if r.claimErr != nil {
		return false, r.claimErr
	}
	if r.beforeClaim != nil {
		r.beforeClaim()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[tournamentID]
	if !ok || item.Status != tournament.StatusActive {
		return false, nil
	}
	item.Status = tournament.StatusProcessing
	r.items[tournamentID] = item
	return true, nil
}

func (r *stubTournamentRepository) MarkFinished(_ context.Context, tournamentID string) error {
	if r.finErr != nil {
		return r.finErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[tournamentID]
	if !ok {
		return nil
	}
	item.Status = tournament.StatusFinished
	r.items[tournamentID] = item
	return nil
}

func (r *stubTournamentRepository) status(tournamentID string) tournament.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[tournamentID].Status
}

type stubLeagueRepository struct {
	byTournament map[string][]league.League
	err          error
}

func (r *stubLeagueRepository) ListByTournament(_ context.Context, tournamentID string) ([]league.League, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byTournament[tournamentID], nil
}

type stubTeamRepository struct {
	mu        sync.Mutex
	byLeague  map[string][]team.Team
	positions map[string]int
	listErr   error
	updateErr map[string]error
}

func (r *stubTeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.byLeague[leagueID], nil
}

func (r *stubTeamRepository) UpdatePosition(_ context.Context, teamID string, position int) error {
	if err := r.updateErr[teamID]; err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.positions == nil {
		r.positions = make(map[string]int)
	}
	r.positions[teamID] = position
	return nil
}

func (r *stubTeamRepository) position(teamID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.positions[teamID]
}

type stubPlayerRepository struct {
	byID map[string]player.Player
	err  error
}

func (r *stubPlayerRepository) ListByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	if r.err != nil {
		return nil, r.err
	}

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubWalletRepository struct {
	accounts map[string]wallet.Account
	err      error
}

func (r *stubWalletRepository) ListByIDs(_ context.Context, userIDs []string) ([]wallet.Account, error) {
	if r.err != nil {
		return nil, r.err
	}

	out := make([]wallet.Account, 0, len(userIDs))
	for _, id := range userIDs {
		if account, ok := r.accounts[id]; ok {
			out = append(out, account)
		}
	}
	return out, nil
}

type stubLedgerRepository struct {
	mu        sync.Mutex
	entries   []ledger.Entry
	balances  map[string]int64
	failTeams map[string]error
}

func (r *stubLedgerRepository) ApplyPrize(_ context.Context, entry ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := r.failTeams[entry.TeamID]; err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.balances == nil {
		r.balances = make(map[string]int64)
	}
	r.balances[entry.UserID] += entry.Value
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubLedgerRepository) ListByUser(_ context.Context, userID string) ([]ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ledger.Entry, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *stubLedgerRepository) entryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *stubLedgerRepository) balance(userID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[userID]
}

func intPtr(v int) *int {
	return &v
}
