package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID                 int64         `db:"id"`
	PublicID           string        `db:"public_id"`
	TournamentPublicID string        `db:"tournament_public_id"`
	Name               string        `db:"name"`
	CurrentScore       sql.NullInt64 `db:"current_score"`
	MissedCut          bool          `db:"missed_cut"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
	DeletedAt          *time.Time    `db:"deleted_at"`
}
