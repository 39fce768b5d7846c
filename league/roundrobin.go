package league

import (
	"errors"
	"fmt"

	"github.com/JDR69/DeporteDubss/models"
)

var ErrInvalidRoster = errors.New("roster contains an invalid team entry")

// Pairing is a single scheduled match inside a round, identified by team IDs.
type Pairing struct {
	HomeTeamID int
	AwayTeamID int
}

// Round is one match day of the generated schedule. Numbers are 1-based.
type Round struct {
	Number   int
	Pairings []Pairing
}

// byeID fills the extra slot when the roster size is odd. Pairings against it
// are byes and produce no match.
const byeID = 0

// GenerateRoundRobin builds a single round-robin schedule with the circle
// method: the first team stays fixed and the rest rotate one slot per round,
// so every pair of teams meets exactly once. The output depends only on the
// input order; there is no randomness here.
//
// An empty roster yields an empty schedule. With an odd team count each team
// sits out exactly one round.
func GenerateRoundRobin(teams []models.Team) ([]Round, error) {
	if len(teams) == 0 {
		return []Round{}, nil
	}

	ids := make([]int, 0, len(teams)+1)
	for i, t := range teams {
		if t.ID <= 0 {
			return nil, fmt.Errorf("%w: position %d", ErrInvalidRoster, i)
		}
		ids = append(ids, t.ID)
	}
	if len(ids)%2 != 0 {
		ids = append(ids, byeID)
	}

	n := len(ids)
	rounds := make([]Round, 0, n-1)

	for r := 0; r < n-1; r++ {
		round := Round{Number: r + 1, Pairings: make([]Pairing, 0, n/2)}
		for i := 0; i < n/2; i++ {
			home, away := ids[i], ids[n-1-i]
			if home == byeID || away == byeID {
				continue
			}
			round.Pairings = append(round.Pairings, Pairing{HomeTeamID: home, AwayTeamID: away})
		}
		rounds = append(rounds, round)

		// Fixed-first rotation: the last team moves to the second slot and
		// everyone else shifts up one position.
		rotated := make([]int, 0, n)
		rotated = append(rotated, ids[0], ids[n-1])
		rotated = append(rotated, ids[1:n-1]...)
		ids = rotated
	}

	return rounds, nil
}
