package models

import "time"

type Result struct {
	ID         int       `json:"id"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
	RecordedAt time.Time `json:"recorded_at"`
}
