package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fairwaypot/settlement/internal/domain/wallet"
	qb "github.com/fairwaypot/settlement/internal/platform/querybuilder"
)

type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) ListByIDs(ctx context.Context, userIDs []string) ([]wallet.Account, error) {
	if len(userIDs) == 0 {
		return []wallet.Account{}, nil
	}

	ids := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("users").
		Where(
			qb.In("user_id", ids),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list accounts query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}

	out := make([]wallet.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, wallet.Account{
			UserID:         row.UserID,
			DisplayName:    row.DisplayName,
			CurrentBalance: row.CurrentBalance,
		})
	}

	return out, nil
}
