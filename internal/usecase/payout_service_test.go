package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/ledger"
	"github.com/fairwaypot/settlement/internal/domain/wallet"
)

func TestPot(t *testing.T) {
	t.Parallel()

	gross, fee, pot := Pot(1000, 3, DefaultPlatformFeeBps)
	require.Equal(t, int64(3000), gross)
	require.Equal(t, int64(300), fee)
	require.Equal(t, int64(2700), pot)

	gross, fee, pot = Pot(1, 1, DefaultPlatformFeeBps)
	require.Equal(t, int64(1), gross)
	require.Equal(t, int64(0), fee)
	require.Equal(t, int64(1), pot)
}

func singleWinnerLeague() league.League {
	return league.League{
		ID:           "lg-1",
		TournamentID: "open-2026",
		Name:         "Sunday Swindle",
		EntryFee:     1000,
		RewardSplits: []league.RewardSplit{
			{Position: 1, Percentage: 0.6, Type: "cash"},
		},
	}
}

func threeTeamLeaderboard() []LeaderboardRow {
	return []LeaderboardRow{
		{TeamID: "team-a", UserID: "u-a", TotalScore: -8, Rank: 1},
		{TeamID: "team-b", UserID: "u-b", TotalScore: -3, Rank: 2},
		{TeamID: "team-c", UserID: "u-c", TotalScore: 2, Rank: 3},
	}
}

func walletsForLeaderboard(rows []LeaderboardRow) *stubWalletRepository {
	accounts := make(map[string]wallet.Account, len(rows))
	for _, row := range rows {
		accounts[row.UserID] = wallet.Account{UserID: row.UserID, CurrentBalance: 0}
	}
	return &stubWalletRepository{accounts: accounts}
}

func TestPayoutService_Distribute_SingleWinner(t *testing.T) {
	t.Parallel()

	rows := threeTeamLeaderboard()
	ledgerRepo := &stubLedgerRepository{}
	service := NewPayoutService(walletsForLeaderboard(rows), ledgerRepo, nil, PayoutConfig{}, nil)

	summary, err := service.Distribute(context.Background(), DistributeInput{
		TournamentID: "open-2026",
		League:       singleWinnerLeague(),
		Leaderboard:  rows,
	})
	require.NoError(t, err)

	// Pot = 1000×3 − 10% = 2700; winner takes floor(2700×0.6) = 1620.
	require.Equal(t, int64(3000), summary.Gross)
	require.Equal(t, int64(2700), summary.Pot)
	require.Equal(t, int64(1620), summary.Awarded)
	require.Equal(t, int64(1080), summary.Residual)

	require.Equal(t, 1, ledgerRepo.entryCount())
	require.Equal(t, int64(1620), ledgerRepo.balance("u-a"))

	entries, err := ledgerRepo.ListByUser(context.Background(), "u-a")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	require.Equal(t, int64(1620), entry.Value)
	require.Equal(t, ledger.TypePrize, entry.Type)
	require.Equal(t, "open-2026", entry.TournamentID)
	require.Equal(t, "lg-1", entry.LeagueID)
	require.Equal(t, "team-a", entry.TeamID)
	require.Equal(t, 1, entry.Position)
	require.Equal(t, int64(2700), entry.Pot)
	require.InEpsilon(t, 0.6, entry.Percentage, 1e-12)
}

func TestPayoutService_Distribute_InvalidEntryFee(t *testing.T) {
	t.Parallel()

	lg := singleWinnerLeague()
	lg.EntryFee = 0

	ledgerRepo := &stubLedgerRepository{}
	service := NewPayoutService(&stubWalletRepository{}, ledgerRepo, nil, PayoutConfig{}, nil)

	_, err := service.Distribute(context.Background(), DistributeInput{
		TournamentID: "open-2026",
		League:       lg,
		Leaderboard:  threeTeamLeaderboard(),
	})
	require.ErrorIs(t, err, ErrDataIntegrity)
	require.Equal(t, 0, ledgerRepo.entryCount())
}

func TestPayoutService_Distribute_ScheduleOverCommitted(t *testing.T) {
	t.Parallel()

	lg := singleWinnerLeague()
	lg.RewardSplits = []league.RewardSplit{
		{Position: 1, Percentage: 0.7},
		{Position: 2, Percentage: 0.5},
	}

	ledgerRepo := &stubLedgerRepository{}
	service := NewPayoutService(&stubWalletRepository{}, ledgerRepo, nil, PayoutConfig{}, nil)

	_, err := service.Distribute(context.Background(), DistributeInput{
		TournamentID: "open-2026",
		League:       lg,
		Leaderboard:  threeTeamLeaderboard(),
	})
	require.ErrorIs(t, err, ErrDataIntegrity)
	require.ErrorContains(t, err, "1.2000")
	require.Equal(t, 0, ledgerRepo.entryCount())
}

func TestPayoutService_Distribute_DefaultScheduleMissingPositions(t *testing.T) {
	t.Parallel()

	lg := singleWinnerLeague()
	lg.RewardSplits = nil // falls back to the 5-tier default

	rows := threeTeamLeaderboard()
	ledgerRepo := &stubLedgerRepository{}
	service := NewPayoutService(walletsForLeaderboard(rows), ledgerRepo, nil, PayoutConfig{}, nil)

	summary, err := service.Distribute(context.Background(), DistributeInput{
		TournamentID: "open-2026",
		League:       lg,
		Leaderboard:  rows,
	})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 5)
	require.Equal(t, PayoutPaid, summary.Outcomes[0].Status)
	require.Equal(t, PayoutPaid, summary.Outcomes[1].Status)
	require.Equal(t, PayoutPaid, summary.Outcomes[2].Status)
	require.Equal(t, PayoutSkipped, summary.Outcomes[3].Status)
	require.Equal(t, PayoutSkipped, summary.Outcomes[4].Status)
	require.Equal(t, 0, summary.Failures())

	// Pot conservation: nothing above the pot is ever handed out, and the
	// residual is exactly what was not awarded.
	require.LessOrEqual(t, summary.Awarded, summary.Pot)
	require.Equal(t, summary.Pot-summary.Awarded, summary.Residual)
	require.Equal(t, 3, ledgerRepo.entryCount())
}

func TestPayoutService_Distribute_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	lg := singleWinnerLeague()
	lg.RewardSplits = nil

	rows := []LeaderboardRow{
		{TeamID: "team-a", UserID: "u-a", Rank: 1},
		{TeamID: "team-b", UserID: "u-b", Rank: 2},
		{TeamID: "team-c", UserID: "u-c", Rank: 3},
		{TeamID: "team-d", UserID: "u-d", Rank: 4},
		{TeamID: "team-e", UserID: "u-e", Rank: 5},
	}
	ledgerRepo := &stubLedgerRepository{
		failTeams: map[string]error{"team-b": errors.New("write timeout")},
	}
	service := NewPayoutService(walletsForLeaderboard(rows), ledgerRepo, nil, PayoutConfig{}, nil)

	summary, err := service.Distribute(context.Background(), DistributeInput{
		TournamentID: "open-2026",
		League:       lg,
		Leaderboard:  rows,
	})
	require.NoError(t, err)

	// Position 2 failed; 1, 3, 4 and 5 were still attempted and paid.
	require.Equal(t, 1, summary.Failures())
	require.Equal(t, 4, ledgerRepo.entryCount())
	require.Zero(t, ledgerRepo.balance("u-b"))
	require.Positive(t, ledgerRepo.balance("u-a"))
	require.Positive(t, ledgerRepo.balance("u-e"))
	require.Equal(t, PayoutFailed, summary.Outcomes[1].Status)
	require.Error(t, summary.Outcomes[1].Err)
}

func TestPayoutService_Distribute_MissingWinnerAccount(t *testing.T) {
	t.Parallel()

	rows := threeTeamLeaderboard()
	wallets := walletsForLeaderboard(rows)
	delete(wallets.accounts, "u-a")

	ledgerRepo := &stubLedgerRepository{}
	service := NewPayoutService(wallets, ledgerRepo, nil, PayoutConfig{}, nil)

	summary, err := service.Distribute(context.Background(), DistributeInput{
		TournamentID: "open-2026",
		League:       singleWinnerLeague(),
		Leaderboard:  rows,
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Failures())
	require.ErrorIs(t, summary.Outcomes[0].Err, ErrNotFound)
	require.Equal(t, 0, ledgerRepo.entryCount())
	require.Zero(t, summary.Awarded)
}
