package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/fairwaypot/settlement/internal/domain/league"
	"github.com/fairwaypot/settlement/internal/domain/player"
	"github.com/fairwaypot/settlement/internal/domain/team"
	"github.com/fairwaypot/settlement/internal/platform/logging"
)

// countingScores is how many of a team's player scores count towards its
// total: the lowest four, golf counting convention.
const countingScores = 4

// LeaderboardRow is one ranked entry of a league's final standing.
type LeaderboardRow struct {
	TeamID     string
	UserID     string
	TotalScore int
	Rank       int
}

type LeaderboardConfig struct {
	// MaxFetchWorkers bounds the concurrent per-team player lookups.
	MaxFetchWorkers int
}

type LeaderboardService struct {
	playerRepo player.Repository
	cfg        LeaderboardConfig
	logger     *logging.Logger
}

func NewLeaderboardService(playerRepo player.Repository, cfg LeaderboardConfig, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxFetchWorkers <= 0 {
		cfg.MaxFetchWorkers = 4
	}

	return &LeaderboardService{
		playerRepo: playerRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

type teamTotal struct {
	team  team.Team
	total int
}

// Compute builds the final standing of a league: per team, the sum of its
// lowest counting scores, ranked ascending (lower is better). Ties are broken
// by earlier team creation time, then team id, so recomputation is always
// deterministic. An empty team list yields an empty leaderboard.
func (s *LeaderboardService) Compute(ctx context.Context, lg league.League, teams []team.Team) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Compute")
	defer span.End()

	if len(teams) == 0 {
		return []LeaderboardRow{}, nil
	}

	workers := pool.NewWithResults[teamTotal]().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.MaxFetchWorkers)

	for _, item := range teams {
		item := item
		workers.Go(func(ctx context.Context) (teamTotal, error) {
			total, err := s.scoreTeam(ctx, item)
			if err != nil {
				return teamTotal{}, fmt.Errorf("score team=%s: %w", item.ID, err)
			}
			return teamTotal{team: item, total: total}, nil
		})
	}

	totals, err := workers.Wait()
	if err != nil {
		return nil, fmt.Errorf("compute leaderboard league=%s: %w", lg.ID, err)
	}

	sort.Slice(totals, func(i, j int) bool {
		left, right := totals[i], totals[j]
		if left.total != right.total {
			return left.total < right.total
		}
		if !left.team.CreatedAt.Equal(right.team.CreatedAt) {
			return left.team.CreatedAt.Before(right.team.CreatedAt)
		}
		return left.team.ID < right.team.ID
	})

	rows := make([]LeaderboardRow, 0, len(totals))
	for idx, item := range totals {
		rows = append(rows, LeaderboardRow{
			TeamID:     item.team.ID,
			UserID:     item.team.UserID,
			TotalScore: item.total,
			Rank:       idx + 1,
		})
	}

	return rows, nil
}

func (s *LeaderboardService) scoreTeam(ctx context.Context, item team.Team) (int, error) {
	players, err := s.playerRepo.ListByIDs(ctx, item.PlayerIDs)
	if err != nil {
		return 0, fmt.Errorf("list players: %w", err)
	}

	scores := make([]int, 0, len(players))
	missedCut := 0
	for _, p := range players {
		scores = append(scores, p.Score())
		if p.MissedCut {
			missedCut++
		}
	}
	sort.Ints(scores)

	counting := countingScores
	if len(scores) < counting {
		counting = len(scores)
	}

	total := 0
	for _, score := range scores[:counting] {
		total += score
	}

	if missedCut > 0 {
		s.logger.DebugContext(ctx, "team carries missed-cut players",
			"team_id", item.ID,
			"missed_cut", missedCut,
		)
	}

	return total, nil
}
