package models

import "time"

// MatchDay is one round of a championship's fixture. Numbers are 1-based and
// contiguous within a championship. Only the date may change after generation.
type MatchDay struct {
	ID             int        `json:"id"`
	ChampionshipID int        `json:"championship_id"`
	Number         int        `json:"number"`
	Date           *time.Time `json:"date,omitempty"`

	Matches []Match `json:"matches,omitempty"`
}
