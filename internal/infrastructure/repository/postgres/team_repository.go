package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fairwaypot/settlement/internal/domain/team"
	qb "github.com/fairwaypot/settlement/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:        row.PublicID,
			LeagueID:  row.LeaguePublicID,
			UserID:    row.UserID,
			Name:      row.Name,
			PlayerIDs: row.PlayerIDs,
			Position:  int(row.Position.Int64),
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}

func (r *TeamRepository) UpdatePosition(ctx context.Context, teamID string, position int) error {
	query, args, err := qb.Update("teams").
		Set("position", position).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team position query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team position rows affected: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("update team position %s: team not found", teamID)
	}

	return nil
}
