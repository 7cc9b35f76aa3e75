package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/team"
	"github.com/fairwaypot/settlement/internal/domain/tournament"
	"github.com/fairwaypot/settlement/internal/platform/logging"
)

type SettlementConfig struct {
	// MaxPositionWorkers bounds the concurrent team-position writes per
	// league. Each write targets a distinct team row.
	MaxPositionWorkers int
}

type SweepInput struct {
	// TournamentID narrows the sweep to one tournament, for manual re-runs.
	// Empty means every settleable tournament.
	TournamentID string
}

// SweepResult is the run-level summary handed back to the scheduler.
type SweepResult struct {
	TournamentsFound int `json:"tournaments_found"`
	Succeeded        int `json:"succeeded"`
	Failed           int `json:"failed"`
	AlreadyClaimed   int `json:"already_claimed"`
	LeaguesSettled   int `json:"leagues_settled"`
	LeaguesSkipped   int `json:"leagues_skipped"`
	LeaguesFailed    int `json:"leagues_failed"`
}

type leagueStatus int

const (
	leagueSettled leagueStatus = iota
	leagueSkipped
	leagueFailed
)

// SettlementService drives the settlement sweep: discovery, claim, per-league
// leaderboard and payouts, lifecycle completion. Tournaments are processed
// sequentially; the only cross-run guard is the conditional claim.
type SettlementService struct {
	tournamentRepo tournament.Repository
	leagueRepo     league.Repository
	teamRepo       team.Repository
	leaderboardSvc *LeaderboardService
	payoutSvc      *PayoutService
	cfg            SettlementConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewSettlementService(
	tournamentRepo tournament.Repository,
	leagueRepo league.Repository,
	teamRepo team.Repository,
	leaderboardSvc *LeaderboardService,
	payoutSvc *PayoutService,
	cfg SettlementConfig,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxPositionWorkers <= 0 {
		cfg.MaxPositionWorkers = 8
	}

	return &SettlementService{
		tournamentRepo: tournamentRepo,
		leagueRepo:     leagueRepo,
		teamRepo:       teamRepo,
		leaderboardSvc: leaderboardSvc,
		payoutSvc:      payoutSvc,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// RunSweep settles every tournament whose scheduled end has passed. One
// tournament's failure never aborts the batch: it is logged, counted, and the
// sweep moves on. A tournament that fails after being claimed stays in
// processing deliberately — that is the operator-visible alarm state, never
// silently rolled back or force-finished.
func (s *SettlementService) RunSweep(ctx context.Context, input SweepInput) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.RunSweep")
	defer span.End()

	now := s.now().UTC()
	candidates, err := s.tournamentRepo.ListSettleable(ctx, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list settleable tournaments: %w", err)
	}
	if input.TournamentID != "" {
		candidates = filterTournaments(candidates, input.TournamentID)
	}

	result := SweepResult{TournamentsFound: len(candidates)}
	s.logger.InfoContext(ctx, "settlement sweep started",
		"as_of", now,
		"tournaments_found", len(candidates),
	)

	for _, item := range candidates {
		claimed, err := s.tournamentRepo.ClaimProcessing(ctx, item.ID)
		if err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "tournament claim errored",
				"tournament_id", item.ID,
				"error", err,
			)
			continue
		}
		if !claimed {
			result.AlreadyClaimed++
			s.logger.InfoContext(ctx, "tournament already processing or finished, skipping",
				"tournament_id", item.ID,
			)
			continue
		}
		s.logger.InfoContext(ctx, "tournament claimed for settlement",
			"tournament_id", item.ID,
			"name", item.Name,
		)

		if err := s.settleTournament(ctx, item, &result); err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "tournament settlement failed, left in processing for operator review",
				"tournament_id", item.ID,
				"error", err,
			)
			continue
		}
		result.Succeeded++
	}

	s.logger.InfoContext(ctx, "settlement sweep finished",
		"tournaments_found", result.TournamentsFound,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"already_claimed", result.AlreadyClaimed,
		"leagues_settled", result.LeaguesSettled,
		"leagues_skipped", result.LeaguesSkipped,
		"leagues_failed", result.LeaguesFailed,
	)

	return result, nil
}

// settleTournament runs under a held claim. An error returned here leaves the
// tournament in processing; per-league faults are absorbed and counted
// instead so one broken league cannot wedge the whole tournament.
func (s *SettlementService) settleTournament(ctx context.Context, item tournament.Tournament, result *SweepResult) error {
	leagues, err := s.leagueRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list leagues tournament=%s: %w", item.ID, err)
	}

	for _, lg := range leagues {
		switch s.settleLeague(ctx, item, lg) {
		case leagueSettled:
			result.LeaguesSettled++
		case leagueSkipped:
			result.LeaguesSkipped++
		case leagueFailed:
			result.LeaguesFailed++
		}
	}

	if err := s.tournamentRepo.MarkFinished(ctx, item.ID); err != nil {
		return fmt.Errorf("mark tournament finished tournament=%s: %w", item.ID, err)
	}
	s.logger.InfoContext(ctx, "tournament finished",
		"tournament_id", item.ID,
		"leagues", len(leagues),
	)

	return nil
}

func (s *SettlementService) settleLeague(ctx context.Context, item tournament.Tournament, lg league.League) leagueStatus {
	teams, err := s.teamRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list teams failed, skipping league",
			"league_id", lg.ID,
			"error", err,
		)
		return leagueFailed
	}
	if len(teams) == 0 {
		s.logger.InfoContext(ctx, "league has no teams, skipping",
			"league_id", lg.ID,
			"tournament_id", item.ID,
		)
		return leagueSkipped
	}

	rows, err := s.leaderboardSvc.Compute(ctx, lg, teams)
	if err != nil {
		s.logger.ErrorContext(ctx, "leaderboard computation failed, skipping league",
			"league_id", lg.ID,
			"error", err,
		)
		return leagueFailed
	}

	if err := s.storePositions(ctx, lg.ID, rows); err != nil {
		s.logger.ErrorContext(ctx, "team position updates failed, rewards withheld for league",
			"league_id", lg.ID,
			"error", err,
		)
		return leagueFailed
	}

	summary, err := s.payoutSvc.Distribute(ctx, DistributeInput{
		TournamentID: item.ID,
		League:       lg,
		Leaderboard:  rows,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "reward distribution aborted for league",
			"league_id", lg.ID,
			"error", err,
		)
		return leagueFailed
	}

	s.logger.InfoContext(ctx, "league settled",
		"league_id", lg.ID,
		"tournament_id", item.ID,
		"teams", len(teams),
		"awarded", summary.Awarded,
		"failed_positions", summary.Failures(),
	)

	return leagueSettled
}

// storePositions fans the per-team rank writes out over a worker pool and
// waits for all of them. The writes are independent, so partial completion
// is possible; any failure withholds the league's payouts.
func (s *SettlementService) storePositions(ctx context.Context, leagueID string, rows []LeaderboardRow) error {
	workers, err := ants.NewPool(s.cfg.MaxPositionWorkers)
	if err != nil {
		return fmt.Errorf("create position worker pool: %w", err)
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		failed   int
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failed++
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, row := range rows {
		row := row
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			if err := s.teamRepo.UpdatePosition(ctx, row.TeamID, row.Rank); err != nil {
				record(fmt.Errorf("update position team=%s rank=%d: %w", row.TeamID, row.Rank, err))
			}
		}); err != nil {
			wg.Done()
			record(fmt.Errorf("submit position update team=%s: %w", row.TeamID, err))
		}
	}
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("%d of %d position updates failed league=%s: %w", failed, len(rows), leagueID, firstErr)
	}
	return nil
}

func filterTournaments(items []tournament.Tournament, tournamentID string) []tournament.Tournament {
	out := make([]tournament.Tournament, 0, 1)
	for _, item := range items {
		if item.ID == tournamentID {
			out = append(out, item)
		}
	}
	return out
}
