package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fairwaypot/settlement/internal/domain/league"
	qb "github.com/fairwaypot/settlement/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) ListByTournament(ctx context.Context, tournamentID string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}
	if len(rows) == 0 {
		return []league.League{}, nil
	}

	splitsByLeague, err := r.rewardSplits(ctx, rows)
	if err != nil {
		return nil, err
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{
			ID:           row.PublicID,
			TournamentID: row.TournamentPublicID,
			Name:         row.Name,
			OwnerUserID:  row.OwnerUserID,
			EntryFee:     row.EntryFee,
			RewardSplits: splitsByLeague[row.PublicID],
			CreatedAt:    row.CreatedAt,
		})
	}

	return out, nil
}

func (r *LeagueRepository) rewardSplits(ctx context.Context, leagues []leagueTableModel) (map[string][]league.RewardSplit, error) {
	ids := make([]any, 0, len(leagues))
	for _, row := range leagues {
		ids = append(ids, row.PublicID)
	}

	query, args, err := qb.Select("*").From("league_reward_splits").
		Where(qb.In("league_public_id", ids)).
		OrderBy("league_public_id", "ordinal").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list reward splits query: %w", err)
	}

	var rows []rewardSplitTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select reward splits: %w", err)
	}

	out := make(map[string][]league.RewardSplit, len(leagues))
	for _, row := range rows {
		out[row.LeaguePublicID] = append(out[row.LeaguePublicID], league.RewardSplit{
			Position:   row.Position,
			Percentage: row.Percentage,
			Type:       row.RewardType,
			ProductID:  row.ProductID.String,
		})
	}

	return out, nil
}
