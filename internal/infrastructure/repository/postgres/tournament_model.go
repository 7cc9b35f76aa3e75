package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type tournamentTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	Name          string         `db:"name"`
	ExternalRefID sql.NullString `db:"external_ref_id"`
	StartsAt      time.Time      `db:"starts_at"`
	FinishesAt    time.Time      `db:"finishes_at"`
	Status        string         `db:"status"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}
