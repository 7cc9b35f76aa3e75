package team

import (
	"fmt"
	"time"
)

// Team is one user's picked roster inside a league. Position is written by
// settlement once the tournament is over; zero means unranked.
type Team struct {
	ID        string
	LeagueID  string
	UserID    string
	Name      string
	PlayerIDs []string
	Position  int
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if len(t.PlayerIDs) == 0 {
		return fmt.Errorf("team has no players")
	}

	return nil
}
