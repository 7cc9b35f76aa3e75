package memory

import (
	"time"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/player"
	"github.com/fairwaypot/settlement/internal/domain/team"
	"github.com/fairwaypot/settlement/internal/domain/tournament"
	"github.com/fairwaypot/settlement/internal/domain/wallet"
)

const (
	TournamentIDOpen2026    = "the-open-2026"
	TournamentIDMasters2027 = "the-masters-2027"

	LeagueIDSundaySwindle = "lg-sunday-swindle"
	LeagueIDClubhouse     = "lg-clubhouse-classic"
)

func intPtr(v int) *int { return &v }

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:         TournamentIDOpen2026,
			Name:       "The Open Championship 2026",
			StartsAt:   time.Date(2026, 7, 16, 6, 0, 0, 0, time.UTC),
			FinishesAt: time.Date(2026, 7, 19, 19, 0, 0, 0, time.UTC),
			Status:     tournament.StatusActive,
		},
		{
			ID:         TournamentIDMasters2027,
			Name:       "The Masters 2027",
			StartsAt:   time.Date(2027, 4, 8, 6, 0, 0, 0, time.UTC),
			FinishesAt: time.Date(2027, 4, 11, 23, 0, 0, 0, time.UTC),
			Status:     tournament.StatusActive,
		},
	}
}

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:           LeagueIDSundaySwindle,
			TournamentID: TournamentIDOpen2026,
			Name:         "Sunday Swindle",
			OwnerUserID:  "u-alice",
			EntryFee:     1000,
			RewardSplits: []league.RewardSplit{
				{Position: 1, Percentage: 0.6, Type: "cash"},
			},
			CreatedAt: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           LeagueIDClubhouse,
			TournamentID: TournamentIDOpen2026,
			Name:         "Clubhouse Classic",
			OwnerUserID:  "u-dan",
			EntryFee:     500,
			// No splits configured; the default five-tier schedule applies.
			CreatedAt: time.Date(2026, 7, 2, 14, 0, 0, 0, time.UTC),
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "tm-birdie-bunch", LeagueID: LeagueIDSundaySwindle, UserID: "u-alice", Name: "Birdie Bunch", PlayerIDs: []string{"pl-mcilroy", "pl-scheffler", "pl-rahm", "pl-hovland", "pl-morikawa"}, CreatedAt: time.Date(2026, 7, 3, 10, 0, 0, 0, time.UTC)},
		{ID: "tm-fairway-five", LeagueID: LeagueIDSundaySwindle, UserID: "u-bob", Name: "Fairway Five", PlayerIDs: []string{"pl-scheffler", "pl-schauffele", "pl-fleetwood", "pl-aberg", "pl-fitzpatrick"}, CreatedAt: time.Date(2026, 7, 3, 11, 0, 0, 0, time.UTC)},
		{ID: "tm-rough-riders", LeagueID: LeagueIDSundaySwindle, UserID: "u-carol", Name: "Rough Riders", PlayerIDs: []string{"pl-rahm", "pl-fleetwood", "pl-lowry", "pl-day"}, CreatedAt: time.Date(2026, 7, 4, 9, 30, 0, 0, time.UTC)},
		{ID: "tm-sandbaggers", LeagueID: LeagueIDClubhouse, UserID: "u-dan", Name: "Sandbaggers", PlayerIDs: []string{"pl-mcilroy", "pl-lowry", "pl-aberg", "pl-day"}, CreatedAt: time.Date(2026, 7, 5, 8, 0, 0, 0, time.UTC)},
		{ID: "tm-mulligans", LeagueID: LeagueIDClubhouse, UserID: "u-erin", Name: "Mulligans", PlayerIDs: []string{"pl-schauffele", "pl-morikawa", "pl-fitzpatrick", "pl-hovland"}, CreatedAt: time.Date(2026, 7, 5, 8, 15, 0, 0, time.UTC)},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-mcilroy", TournamentID: TournamentIDOpen2026, Name: "Rory McIlroy", CurrentScore: intPtr(-12)},
		{ID: "pl-scheffler", TournamentID: TournamentIDOpen2026, Name: "Scottie Scheffler", CurrentScore: intPtr(-14)},
		{ID: "pl-rahm", TournamentID: TournamentIDOpen2026, Name: "Jon Rahm", CurrentScore: intPtr(-9)},
		{ID: "pl-hovland", TournamentID: TournamentIDOpen2026, Name: "Viktor Hovland", CurrentScore: intPtr(-5)},
		{ID: "pl-morikawa", TournamentID: TournamentIDOpen2026, Name: "Collin Morikawa", CurrentScore: intPtr(-3)},
		{ID: "pl-schauffele", TournamentID: TournamentIDOpen2026, Name: "Xander Schauffele", CurrentScore: intPtr(-8)},
		{ID: "pl-fleetwood", TournamentID: TournamentIDOpen2026, Name: "Tommy Fleetwood", CurrentScore: intPtr(-6)},
		{ID: "pl-aberg", TournamentID: TournamentIDOpen2026, Name: "Ludvig Aberg", CurrentScore: intPtr(-2)},
		{ID: "pl-fitzpatrick", TournamentID: TournamentIDOpen2026, Name: "Matt Fitzpatrick", CurrentScore: intPtr(1)},
		{ID: "pl-lowry", TournamentID: TournamentIDOpen2026, Name: "Shane Lowry", CurrentScore: intPtr(4), MissedCut: true},
		{ID: "pl-day", TournamentID: TournamentIDOpen2026, Name: "Jason Day", MissedCut: true},
	}
}

func SeedAccounts() []wallet.Account {
	return []wallet.Account{
		{UserID: "u-alice", DisplayName: "Alice", CurrentBalance: 5000},
		{UserID: "u-bob", DisplayName: "Bob", CurrentBalance: 2500},
		{UserID: "u-carol", DisplayName: "Carol", CurrentBalance: 0},
		{UserID: "u-dan", DisplayName: "Dan", CurrentBalance: 1200},
		{UserID: "u-erin", DisplayName: "Erin", CurrentBalance: 800},
	}
}
