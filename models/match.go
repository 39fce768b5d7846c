package models

// Match pairs a home and an away team inside one match day.
// HomeTeamID != AwayTeamID always; a nil ResultID means not yet played.
type Match struct {
	ID         int  `json:"id"`
	MatchDayID int  `json:"match_day_id"`
	VenueID    int  `json:"venue_id"`
	HomeTeamID int  `json:"home_team_id"`
	AwayTeamID int  `json:"away_team_id"`
	ResultID   *int `json:"result_id,omitempty"`

	HomeTeam *Team   `json:"home_team,omitempty"`
	AwayTeam *Team   `json:"away_team,omitempty"`
	Venue    *Venue  `json:"venue,omitempty"`
	Result   *Result `json:"result,omitempty"`
}

func (m *Match) Played() bool {
	return m.ResultID != nil
}
