package models

type Venue struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Active   bool    `json:"active"`
}
