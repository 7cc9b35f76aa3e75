package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fairwaypot/settlement/internal/domain/tournament"
	qb "github.com/fairwaypot/settlement/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) ListSettleable(ctx context.Context, now time.Time) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(
			qb.Eq("status", string(tournament.StatusActive)),
			qb.Lte("finishes_at", now),
			qb.IsNull("deleted_at"),
		).
		OrderBy("finishes_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list settleable tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select settleable tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.Tournament{
			ID:            row.PublicID,
			Name:          row.Name,
			ExternalRefID: row.ExternalRefID.String,
			StartsAt:      row.StartsAt,
			FinishesAt:    row.FinishesAt,
			Status:        tournament.Status(row.Status),
			PlayerIDs:     row.PlayerIDs,
		})
	}

	return out, nil
}

// ClaimProcessing is the optimistic lock for the whole settlement run: a
// conditional UPDATE guarded on the current status. Zero rows affected means
// another worker already owns or finished the tournament.
func (r *TournamentRepository) ClaimProcessing(ctx context.Context, tournamentID string) (bool, error) {
	query, args, err := qb.Update("tournaments").
		Set("status", string(tournament.StatusProcessing)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", tournamentID),
			qb.Eq("status", string(tournament.StatusActive)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build claim tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim tournament rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r *TournamentRepository) MarkFinished(ctx context.Context, tournamentID string) error {
	query, args, err := qb.Update("tournaments").
		Set("status", string(tournament.StatusFinished)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", tournamentID),
			qb.Eq("status", string(tournament.StatusProcessing)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finish tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finish tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish tournament rows affected: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("finish tournament %s: not in processing", tournamentID)
	}

	return nil
}
