package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID                 int64      `db:"id"`
	PublicID           string     `db:"public_id"`
	TournamentPublicID string     `db:"tournament_public_id"`
	Name               string     `db:"name"`
	OwnerUserID        string     `db:"owner_user_id"`
	EntryFee           int64      `db:"entry_fee"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

type rewardSplitTableModel struct {
	ID             int64          `db:"id"`
	LeaguePublicID string         `db:"league_public_id"`
	Ordinal        int            `db:"ordinal"`
	Position       int            `db:"position"`
	Percentage     float64        `db:"percentage"`
	RewardType     string         `db:"reward_type"`
	ProductID      sql.NullString `db:"product_id"`
}
