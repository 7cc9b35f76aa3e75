package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fairwaypot/settlement/internal/domain/ledger"
	qb "github.com/fairwaypot/settlement/internal/platform/querybuilder"
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ApplyPrize credits the wallet and appends the ledger row inside one
// transaction. The balance update is a server-side increment, never a
// read-modify-write, so concurrent prizes to the same user cannot clobber
// each other.
func (r *LedgerRepository) ApplyPrize(ctx context.Context, entry ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("apply prize: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for prize: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	creditQuery, creditArgs, err := qb.Update("users").
		SetExpr("current_balance", "current_balance + ?", entry.Value).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", entry.UserID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build credit balance query: %w", err)
	}

	creditResult, err := tx.ExecContext(ctx, creditQuery, creditArgs...)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	affected, err := creditResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit balance rows affected: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("credit balance: account %s not found", entry.UserID)
	}

	insertQuery, insertArgs, err := qb.InsertModel("transactions", transactionTableModel{
		PublicID:           entry.ID,
		UserID:             entry.UserID,
		Value:              entry.Value,
		Type:               entry.Type,
		TournamentPublicID: entry.TournamentID,
		LeaguePublicID:     entry.LeagueID,
		TeamPublicID:       entry.TeamID,
		Position:           entry.Position,
		Pot:                entry.Pot,
		Percentage:         entry.Percentage,
		CreatedAt:          entry.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert transaction query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prize: %w", err)
	}

	return nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string) ([]ledger.Entry, error) {
	query, args, err := qb.Select("*").From("transactions").
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list transactions query: %w", err)
	}

	var rows []transactionRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	out := make([]ledger.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledger.Entry{
			ID:           row.PublicID,
			UserID:       row.UserID,
			Value:        row.Value,
			Type:         row.Type,
			TournamentID: row.TournamentPublicID.String,
			LeagueID:     row.LeaguePublicID,
			TeamID:       row.TeamPublicID.String,
			Position:     int(row.Position.Int64),
			Pot:          row.Pot.Int64,
			Percentage:   row.Percentage.Float64,
			CreatedAt:    row.CreatedAt,
		})
	}

	return out, nil
}
