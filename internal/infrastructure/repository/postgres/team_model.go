package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	LeaguePublicID string         `db:"league_public_id"`
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	PlayerIDs      pq.StringArray `db:"player_ids"`
	Position       sql.NullInt64  `db:"position"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}
