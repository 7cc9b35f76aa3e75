package league

import (
	"fmt"
	"time"
)

// RewardSplit is one tier of a league's prize schedule: the team finishing at
// Position receives Percentage of the pot.
type RewardSplit struct {
	Position   int
	Percentage float64
	Type       string
	ProductID  string
}

// League is a private pool of teams competing within one tournament. Read-only
// to settlement.
type League struct {
	ID           string
	TournamentID string
	Name         string
	OwnerUserID  string
	// EntryFee is in the smallest currency unit.
	EntryFee     int64
	RewardSplits []RewardSplit
	CreatedAt    time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.TournamentID == "" {
		return fmt.Errorf("league tournament id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// Schedule returns the league's reward schedule, falling back to the platform
// default when the owner never configured one.
func (l League) Schedule() []RewardSplit {
	if len(l.RewardSplits) > 0 {
		return l.RewardSplits
	}
	return DefaultRewardSchedule()
}

// DefaultRewardSchedule is the platform's five-tier split applied to leagues
// without a custom schedule.
func DefaultRewardSchedule() []RewardSplit {
	return []RewardSplit{
		{Position: 1, Percentage: 0.60, Type: "cash"},
		{Position: 2, Percentage: 0.15, Type: "cash"},
		{Position: 3, Percentage: 0.125, Type: "cash"},
		{Position: 4, Percentage: 0.075, Type: "cash"},
		{Position: 5, Percentage: 0.05, Type: "cash"},
	}
}

// ScheduleTotal sums the percentage column of a schedule. A total above 1.0
// is a data-integrity fault the payout path refuses to process.
func ScheduleTotal(splits []RewardSplit) float64 {
	total := 0.0
	for _, split := range splits {
		total += split.Percentage
	}
	return total
}
