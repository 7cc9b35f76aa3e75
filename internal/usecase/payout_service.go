package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/ledger"
	"github.com/fairwaypot/settlement/internal/domain/wallet"
	idgen "github.com/fairwaypot/settlement/internal/platform/id"
	"github.com/fairwaypot/settlement/internal/platform/logging"
)

const (
	// DefaultPlatformFeeBps is the platform's cut of the gross entry fees,
	// in basis points.
	DefaultPlatformFeeBps = 1000

	// scheduleTotalTolerance absorbs float noise when validating that a
	// reward schedule does not promise more than the whole pot.
	scheduleTotalTolerance = 1e-9
)

const (
	PayoutPaid    = "paid"
	PayoutSkipped = "skipped"
	PayoutFailed  = "failed"
)

// PayoutOutcome reports what happened to a single reward position. Skips are
// benign (no team at that rank, rounded-to-zero reward); failures carry the
// error so an operator can remediate the one position by hand.
type PayoutOutcome struct {
	Position int
	Status   string
	TeamID   string
	UserID   string
	Amount   int64
	Reason   string
	Err      error
}

// PayoutSummary is the audit record of one league's distribution. All money
// fields are in the smallest currency unit.
type PayoutSummary struct {
	LeagueID    string
	Gross       int64
	PlatformFee int64
	Pot         int64
	Awarded     int64
	Residual    int64
	Outcomes    []PayoutOutcome
}

// Failures counts outcomes that need operator attention.
func (s PayoutSummary) Failures() int {
	count := 0
	for _, outcome := range s.Outcomes {
		if outcome.Status == PayoutFailed {
			count++
		}
	}
	return count
}

// Pot derives the prize pool from entry fees: gross = entryFee × teamCount,
// fee = gross × feeBps/10000 rounded down, pot = gross − fee. Pure integer
// math, no side effects.
func Pot(entryFee int64, teamCount int, feeBps int64) (gross, fee, pot int64) {
	gross = entryFee * int64(teamCount)
	fee = gross * feeBps / 10000
	pot = gross - fee
	return gross, fee, pot
}

type PayoutConfig struct {
	PlatformFeeBps int64
}

type PayoutService struct {
	walletRepo wallet.Repository
	ledgerRepo ledger.Repository
	ids        idgen.Generator
	cfg        PayoutConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewPayoutService(
	walletRepo wallet.Repository,
	ledgerRepo ledger.Repository,
	ids idgen.Generator,
	cfg PayoutConfig,
	logger *logging.Logger,
) *PayoutService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewPrefixedGenerator("txn")
	}
	if cfg.PlatformFeeBps <= 0 {
		cfg.PlatformFeeBps = DefaultPlatformFeeBps
	}

	return &PayoutService{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

type DistributeInput struct {
	TournamentID string
	League       league.League
	Leaderboard  []LeaderboardRow
}

// Distribute pays the league's reward schedule out of the pot. Precondition
// violations (non-positive entry fee, schedule promising over 100%) abort the
// league; everything past that point is isolated per position so one bad
// winner never blocks the others.
func (s *PayoutService) Distribute(ctx context.Context, input DistributeInput) (PayoutSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PayoutService.Distribute")
	defer span.End()

	lg := input.League
	if lg.EntryFee <= 0 {
		return PayoutSummary{}, fmt.Errorf("%w: league=%s has entry fee %d", ErrDataIntegrity, lg.ID, lg.EntryFee)
	}

	schedule := lg.Schedule()
	if total := league.ScheduleTotal(schedule); total > 1.0+scheduleTotalTolerance {
		return PayoutSummary{}, fmt.Errorf("%w: league=%s reward schedule sums to %.4f", ErrDataIntegrity, lg.ID, total)
	}

	gross, fee, pot := Pot(lg.EntryFee, len(input.Leaderboard), s.cfg.PlatformFeeBps)
	summary := PayoutSummary{
		LeagueID:    lg.ID,
		Gross:       gross,
		PlatformFee: fee,
		Pot:         pot,
		Outcomes:    make([]PayoutOutcome, 0, len(schedule)),
	}

	rowByRank := make(map[int]LeaderboardRow, len(input.Leaderboard))
	userIDs := make([]string, 0, len(input.Leaderboard))
	for _, row := range input.Leaderboard {
		rowByRank[row.Rank] = row
		userIDs = append(userIDs, row.UserID)
	}

	accounts, err := s.prefetchAccounts(ctx, userIDs)
	if err != nil {
		return PayoutSummary{}, fmt.Errorf("prefetch winner accounts league=%s: %w", lg.ID, err)
	}

	for _, split := range schedule {
		outcome := s.payPosition(ctx, input, split, rowByRank, accounts, pot)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == PayoutPaid {
			summary.Awarded += outcome.Amount
		}
	}
	summary.Residual = summary.Pot - summary.Awarded

	s.logger.InfoContext(ctx, "league payouts distributed",
		"league_id", lg.ID,
		"tournament_id", input.TournamentID,
		"gross", summary.Gross,
		"platform_fee", summary.PlatformFee,
		"pot", summary.Pot,
		"awarded", summary.Awarded,
		"residual", summary.Residual,
		"failed_positions", summary.Failures(),
	)

	return summary, nil
}

func (s *PayoutService) prefetchAccounts(ctx context.Context, userIDs []string) (map[string]wallet.Account, error) {
	accounts, err := s.walletRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]wallet.Account, len(accounts))
	for _, account := range accounts {
		out[account.UserID] = account
	}
	return out, nil
}

func (s *PayoutService) payPosition(
	ctx context.Context,
	input DistributeInput,
	split league.RewardSplit,
	rowByRank map[int]LeaderboardRow,
	accounts map[string]wallet.Account,
	pot int64,
) PayoutOutcome {
	lg := input.League

	row, ok := rowByRank[split.Position]
	if !ok {
		s.logger.InfoContext(ctx, "no team at reward position, skipping",
			"league_id", lg.ID,
			"position", split.Position,
		)
		return PayoutOutcome{Position: split.Position, Status: PayoutSkipped, Reason: "no team at position"}
	}

	amount := int64(math.Floor(float64(pot) * split.Percentage))
	if amount <= 0 {
		s.logger.InfoContext(ctx, "reward rounds to zero, skipping",
			"league_id", lg.ID,
			"position", split.Position,
			"pot", pot,
			"percentage", split.Percentage,
		)
		return PayoutOutcome{
			Position: split.Position,
			Status:   PayoutSkipped,
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			Reason:   "non-positive reward amount",
		}
	}

	if _, ok := accounts[row.UserID]; !ok {
		err := fmt.Errorf("%w: user=%s for team=%s", ErrNotFound, row.UserID, row.TeamID)
		s.logger.ErrorContext(ctx, "winner account missing, payout not applied",
			"league_id", lg.ID,
			"position", split.Position,
			"team_id", row.TeamID,
			"user_id", row.UserID,
			"amount", amount,
			"error", err,
		)
		return PayoutOutcome{
			Position: split.Position,
			Status:   PayoutFailed,
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			Amount:   amount,
			Err:      err,
		}
	}

	entryID, err := s.ids.NewID()
	if err != nil {
		return s.failedOutcome(ctx, lg.ID, split.Position, row, amount, fmt.Errorf("generate ledger id: %w", err))
	}

	entry := ledger.Entry{
		ID:           entryID,
		UserID:       row.UserID,
		Value:        amount,
		Type:         ledger.TypePrize,
		TournamentID: input.TournamentID,
		LeagueID:     lg.ID,
		TeamID:       row.TeamID,
		Position:     split.Position,
		Pot:          pot,
		Percentage:   split.Percentage,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.ledgerRepo.ApplyPrize(ctx, entry); err != nil {
		return s.failedOutcome(ctx, lg.ID, split.Position, row, amount, fmt.Errorf("apply prize: %w", err))
	}

	s.logger.InfoContext(ctx, "prize paid",
		"league_id", lg.ID,
		"position", split.Position,
		"team_id", row.TeamID,
		"user_id", row.UserID,
		"amount", amount,
	)

	return PayoutOutcome{
		Position: split.Position,
		Status:   PayoutPaid,
		TeamID:   row.TeamID,
		UserID:   row.UserID,
		Amount:   amount,
	}
}

func (s *PayoutService) failedOutcome(ctx context.Context, leagueID string, position int, row LeaderboardRow, amount int64, err error) PayoutOutcome {
	s.logger.ErrorContext(ctx, "payout failed, continuing with remaining positions",
		"league_id", leagueID,
		"position", position,
		"team_id", row.TeamID,
		"user_id", row.UserID,
		"amount", amount,
		"error", err,
	)
	return PayoutOutcome{
		Position: position,
		Status:   PayoutFailed,
		TeamID:   row.TeamID,
		UserID:   row.UserID,
		Amount:   amount,
		Err:      err,
	}
}
