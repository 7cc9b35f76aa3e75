package postgres

import (
	"database/sql"
	"time"
)

// transactionTableModel carries the insertable columns only; id is assigned
// by the database.
type transactionTableModel struct {
	PublicID           string    `db:"public_id"`
	UserID             string    `db:"user_id"`
	Value              int64     `db:"value"`
	Type               string    `db:"type"`
	TournamentPublicID string    `db:"tournament_public_id"`
	LeaguePublicID     string    `db:"league_public_id"`
	TeamPublicID       string    `db:"team_public_id"`
	Position           int       `db:"position"`
	Pot                int64     `db:"pot"`
	Percentage         float64   `db:"percentage"`
	CreatedAt          time.Time `db:"created_at"`
}

type transactionRowModel struct {
	ID                 int64           `db:"id"`
	PublicID           string          `db:"public_id"`
	UserID             string          `db:"user_id"`
	Value              int64           `db:"value"`
	Type               string          `db:"type"`
	TournamentPublicID sql.NullString  `db:"tournament_public_id"`
	LeaguePublicID     string          `db:"league_public_id"`
	TeamPublicID       sql.NullString  `db:"team_public_id"`
	Position           sql.NullInt64   `db:"position"`
	Pot                sql.NullInt64   `db:"pot"`
	Percentage         sql.NullFloat64 `db:"percentage"`
	CreatedAt          time.Time       `db:"created_at"`
}
