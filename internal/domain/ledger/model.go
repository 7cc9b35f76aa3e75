package ledger

import (
	"fmt"
	"time"
)

// TypePrize is the only entry type settlement writes.
const TypePrize = "prize"

// Entry is one immutable row of the money-movement ledger. Settlement appends
// exactly one entry per successful payout and never updates or deletes them.
type Entry struct {
	ID     string
	UserID string
	// Value is in the smallest currency unit, always positive for prizes.
	Value int64
	Type  string

	// Provenance ties the payout back to what produced it.
	TournamentID string
	LeagueID     string
	TeamID       string
	Position     int
	Pot          int64
	Percentage   float64

	CreatedAt time.Time
}

func (e Entry) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("ledger entry user id is required")
	}
	if e.Value <= 0 {
		return fmt.Errorf("ledger entry value must be positive")
	}
	if e.Type == "" {
		return fmt.Errorf("ledger entry type is required")
	}
	if e.LeagueID == "" {
		return fmt.Errorf("ledger entry league id is required")
	}

	return nil
}
