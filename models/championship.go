package models

import "time"

// ChampionshipStatus mirrors the ENUM in the database.
type ChampionshipStatus string

const (
	ChampionshipPending    ChampionshipStatus = "pending"
	ChampionshipInProgress ChampionshipStatus = "in_progress"
	ChampionshipFinished   ChampionshipStatus = "finished"
)

type Championship struct {
	ID          int                `json:"id"`
	OrganizerID int                `json:"organizer_id"`
	SportID     int                `json:"sport_id"`
	Name        string             `json:"name"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
	EndDate     *time.Time         `json:"end_date,omitempty"`
	Status      ChampionshipStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`

	// Optional linked entities, populated by the service layer.
	Organizer *User          `json:"organizer,omitempty"`
	Sport     *Sport         `json:"sport,omitempty"`
	Teams     []Team         `json:"teams,omitempty"`
	MatchDays []MatchDay     `json:"match_days,omitempty"`
	Standings []StandingsRow `json:"standings,omitempty"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}
