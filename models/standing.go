package models

import "time"

// StandingsRow is a team's cumulative record within one championship.
// Exactly one row exists per (championship, team) pair. Position 0 means the
// table has not been ranked yet.
type StandingsRow struct {
	ID             int       `json:"id"`
	ChampionshipID int       `json:"championship_id"`
	TeamID         int       `json:"team_id"`
	Position       int       `json:"position"`
	Points         int       `json:"points"`
	Played         int       `json:"played"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	UpdatedAt      time.Time `json:"updated_at"`

	Team *Team `json:"team,omitempty"`
}
