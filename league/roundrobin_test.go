package league

import (
	"fmt"
	"testing"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{ID: i + 1, Name: fmt.Sprintf("Team %d", i+1)}
	}
	return teams
}

func TestGenerateRoundRobinEmptyRoster(t *testing.T) {
	rounds, err := GenerateRoundRobin(nil)
	require.NoError(t, err)
	assert.Empty(t, rounds)
}

func TestGenerateRoundRobinInvalidEntry(t *testing.T) {
	teams := []models.Team{{ID: 1}, {ID: 0}, {ID: 3}}
	_, err := GenerateRoundRobin(teams)
	require.ErrorIs(t, err, ErrInvalidRoster)
}

func TestGenerateRoundRobinSingleTeam(t *testing.T) {
	rounds, err := GenerateRoundRobin(makeTeams(1))
	require.NoError(t, err)
	// One synthetic round, but the only pairing touches the bye slot.
	require.Len(t, rounds, 1)
	assert.Empty(t, rounds[0].Pairings)
}

func TestGenerateRoundRobinFourTeamSchedule(t *testing.T) {
	// A=1 B=2 C=3 D=4. Fixed-first circle method gives exactly this schedule.
	rounds, err := GenerateRoundRobin(makeTeams(4))
	require.NoError(t, err)
	require.Len(t, rounds, 3)

	assert.Equal(t, []Pairing{{1, 4}, {2, 3}}, rounds[0].Pairings)
	assert.Equal(t, []Pairing{{1, 3}, {4, 2}}, rounds[1].Pairings)
	assert.Equal(t, []Pairing{{1, 2}, {3, 4}}, rounds[2].Pairings)

	for i, round := range rounds {
		assert.Equal(t, i+1, round.Number)
	}
}

func TestGenerateRoundRobinDeterminism(t *testing.T) {
	teams := makeTeams(7)
	first, err := GenerateRoundRobin(teams)
	require.NoError(t, err)
	second, err := GenerateRoundRobin(teams)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRoundRobinEveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 6, 8, 11, 16} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			rounds, err := GenerateRoundRobin(makeTeams(n))
			require.NoError(t, err)

			wantRounds := n - 1
			if n%2 != 0 {
				wantRounds = n
			}
			assert.Len(t, rounds, wantRounds)

			seen := make(map[[2]int]int)
			for _, round := range rounds {
				inRound := make(map[int]bool)
				for _, p := range round.Pairings {
					assert.NotEqual(t, p.HomeTeamID, p.AwayTeamID)
					assert.False(t, inRound[p.HomeTeamID], "team %d twice in round %d", p.HomeTeamID, round.Number)
					assert.False(t, inRound[p.AwayTeamID], "team %d twice in round %d", p.AwayTeamID, round.Number)
					inRound[p.HomeTeamID] = true
					inRound[p.AwayTeamID] = true

					key := [2]int{p.HomeTeamID, p.AwayTeamID}
					if key[0] > key[1] {
						key[0], key[1] = key[1], key[0]
					}
					seen[key]++
				}
			}

			assert.Len(t, seen, n*(n-1)/2)
			for pair, count := range seen {
				assert.Equal(t, 1, count, "pair %v scheduled %d times", pair, count)
			}
		})
	}
}

func TestGenerateRoundRobinOddCountByes(t *testing.T) {
	const n = 5
	rounds, err := GenerateRoundRobin(makeTeams(n))
	require.NoError(t, err)
	require.Len(t, rounds, n)

	byes := make(map[int]int)
	for _, round := range rounds {
		// With 5 teams, exactly two matches per round and one team resting.
		require.Len(t, round.Pairings, 2)
		playing := make(map[int]bool)
		for _, p := range round.Pairings {
			playing[p.HomeTeamID] = true
			playing[p.AwayTeamID] = true
		}
		resting := 0
		for id := 1; id <= n; id++ {
			if !playing[id] {
				byes[id]++
				resting++
			}
		}
		assert.Equal(t, 1, resting, "round %d", round.Number)
	}

	for id := 1; id <= n; id++ {
		assert.Equal(t, 1, byes[id], "team %d byes", id)
	}
}
