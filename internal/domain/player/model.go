package player

import "fmt"

// Player is a tournament entrant. CurrentScore is relative to par, lower is
// better; nil means no score has been ingested yet and counts as zero.
// Settlement never writes players.
type Player struct {
	ID           string
	TournamentID string
	Name         string
	CurrentScore *int
	MissedCut    bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TournamentID == "" {
		return fmt.Errorf("player tournament id is required")
	}

	return nil
}

// Score returns the ingested score, defaulting to zero when unset.
func (p Player) Score() int {
	if p.CurrentScore == nil {
		return 0
	}
	return *p.CurrentScore
}
