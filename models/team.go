package models

import "time"

type Team struct {
	ID         int       `json:"id"`
	DelegateID int       `json:"delegate_id"`
	Name       string    `json:"name"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`

	Delegate *User    `json:"delegate,omitempty"`
	Players  []Player `json:"players,omitempty"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// Player links a user to the team they play for. One team per player.
type Player struct {
	UserID int     `json:"user_id"`
	TeamID int     `json:"team_id"`
	Note   *string `json:"note,omitempty"`

	User *User `json:"user,omitempty"`
}
