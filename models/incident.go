package models

import "time"

type IncidentKind string

const (
	IncidentYellowCard IncidentKind = "yellow_card"
	IncidentRedCard    IncidentKind = "red_card"
	IncidentInjury     IncidentKind = "injury"
	IncidentOther      IncidentKind = "other"
)

type Incident struct {
	ID          int          `json:"id"`
	MatchID     int          `json:"match_id"`
	TeamID      *int         `json:"team_id,omitempty"`
	PlayerID    *int         `json:"player_id,omitempty"`
	Kind        IncidentKind `json:"kind"`
	Minute      *int         `json:"minute,omitempty"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
}
