package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/player"
	"github.com/fairwaypot/settlement/internal/domain/team"
)

func fixedTime(offset int) time.Time {
	return time.Date(2026, time.July, 19, 18, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
}

func TestLeaderboardService_Compute_BestFourCounting(t *testing.T) {
	t.Parallel()

	players := &stubPlayerRepository{byID: map[string]player.Player{
		// Team A: five scores, the worst (+9) must not count.
		"p1": {ID: "p1", TournamentID: "open-2026", CurrentScore: intPtr(-4)},
		"p2": {ID: "p2", TournamentID: "open-2026", CurrentScore: intPtr(-2)},
		"p3": {ID: "p3", TournamentID: "open-2026", CurrentScore: intPtr(0)},
		"p4": {ID: "p4", TournamentID: "open-2026", CurrentScore: intPtr(3)},
		"p5": {ID: "p5", TournamentID: "open-2026", CurrentScore: intPtr(9), MissedCut: true},
		// Team B: only two scored players, one with no ingested score yet.
		"p6": {ID: "p6", TournamentID: "open-2026", CurrentScore: intPtr(-6)},
		"p7": {ID: "p7", TournamentID: "open-2026"},
	}}

	service := NewLeaderboardService(players, LeaderboardConfig{}, nil)

	teams := []team.Team{
		{ID: "team-a", LeagueID: "lg-1", UserID: "u-a", PlayerIDs: []string{"p1", "p2", "p3", "p4", "p5"}, CreatedAt: fixedTime(0)},
		{ID: "team-b", LeagueID: "lg-1", UserID: "u-b", PlayerIDs: []string{"p6", "p7"}, CreatedAt: fixedTime(1)},
	}

	rows, err := service.Compute(context.Background(), league.League{ID: "lg-1", TournamentID: "open-2026", Name: "Lads"}, teams)
	if err != nil {
		t.Fatalf("compute leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Team B: -6 + 0 = -6 beats team A: -4-2+0+3 = -3.
	if rows[0].TeamID != "team-b" || rows[0].TotalScore != -6 || rows[0].Rank != 1 {
		t.Fatalf("unexpected rank 1 row: %+v", rows[0])
	}
	if rows[1].TeamID != "team-a" || rows[1].TotalScore != -3 || rows[1].Rank != 2 {
		t.Fatalf("unexpected rank 2 row: %+v", rows[1])
	}
}

func TestLeaderboardService_Compute_TieBreakIsDeterministic(t *testing.T) {
	t.Parallel()

	players := &stubPlayerRepository{byID: map[string]player.Player{
		"p1": {ID: "p1", TournamentID: "open-2026", CurrentScore: intPtr(-1)},
		"p2": {ID: "p2", TournamentID: "open-2026", CurrentScore: intPtr(-1)},
	}}

	service := NewLeaderboardService(players, LeaderboardConfig{MaxFetchWorkers: 2}, nil)

	// Same total; the later-created team must rank behind the earlier one
	// regardless of input order.
	older := team.Team{ID: "team-z", LeagueID: "lg-1", UserID: "u-z", PlayerIDs: []string{"p1"}, CreatedAt: fixedTime(0)}
	newer := team.Team{ID: "team-a", LeagueID: "lg-1", UserID: "u-a", PlayerIDs: []string{"p2"}, CreatedAt: fixedTime(5)}

	for run := 0; run < 3; run++ {
		rows, err := service.Compute(context.Background(), league.League{ID: "lg-1", TournamentID: "open-2026", Name: "Lads"}, []team.Team{newer, older})
		if err != nil {
			t.Fatalf("compute leaderboard run %d: %v", run, err)
		}
		if rows[0].TeamID != "team-z" || rows[0].Rank != 1 {
			t.Fatalf("run %d: expected team-z first, got %+v", run, rows[0])
		}
		if rows[1].TeamID != "team-a" || rows[1].Rank != 2 {
			t.Fatalf("run %d: expected team-a second, got %+v", run, rows[1])
		}
	}
}

func TestLeaderboardService_Compute_EmptyLeague(t *testing.T) {
	t.Parallel()

	service := NewLeaderboardService(&stubPlayerRepository{}, LeaderboardConfig{}, nil)

	rows, err := service.Compute(context.Background(), league.League{ID: "lg-1", TournamentID: "open-2026", Name: "Lads"}, nil)
	if err != nil {
		t.Fatalf("compute leaderboard: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty leaderboard, got %d rows", len(rows))
	}
}

func TestLeaderboardService_Compute_PlayerFetchError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("storage down")
	service := NewLeaderboardService(&stubPlayerRepository{err: wantErr}, LeaderboardConfig{}, nil)

	teams := []team.Team{
		{ID: "team-a", LeagueID: "lg-1", UserID: "u-a", PlayerIDs: []string{"p1"}, CreatedAt: fixedTime(0)},
	}

	_, err := service.Compute(context.Background(), league.League{ID: "lg-1", TournamentID: "open-2026", Name: "Lads"}, teams)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
