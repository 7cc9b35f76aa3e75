package tournament

import (
	"fmt"
	"time"
)

// Status is the settlement lifecycle state of a tournament.
type Status string

const (
	// StatusActive means the tournament has not been claimed for settlement.
	StatusActive Status = "active"
	// StatusProcessing means exactly one sweep run owns the tournament.
	StatusProcessing Status = "processing"
	// StatusFinished is terminal.
	StatusFinished Status = "finished"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusProcessing, StatusFinished:
		return true
	}
	return false
}

// Tournament is a golf tournament ingested from the sports-data provider.
// Settlement only ever mutates Status.
type Tournament struct {
	ID            string
	Name          string
	ExternalRefID string
	StartsAt      time.Time
	FinishesAt    time.Time
	Status        Status
	PlayerIDs     []string
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("tournament status %q is not valid", t.Status)
	}
	if t.FinishesAt.Before(t.StartsAt) {
		return fmt.Errorf("tournament finishes before it starts")
	}

	return nil
}
