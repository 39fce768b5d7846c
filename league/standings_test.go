package league

import (
	"math/rand"
	"testing"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyResultWinLoss(t *testing.T) {
	a := &models.StandingsRow{TeamID: 1}
	b := &models.StandingsRow{TeamID: 2}

	// A beats B 3-1.
	ApplyResult(a, b, 3, 1)

	assert.Equal(t, 1, a.Played)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 0, a.Draws)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 3, a.GoalsFor)
	assert.Equal(t, 1, a.GoalsAgainst)
	assert.Equal(t, 2, a.GoalDifference)
	assert.Equal(t, 3, a.Points)

	assert.Equal(t, 1, b.Played)
	assert.Equal(t, 0, b.Wins)
	assert.Equal(t, 0, b.Draws)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 1, b.GoalsFor)
	assert.Equal(t, 3, b.GoalsAgainst)
	assert.Equal(t, -2, b.GoalDifference)
	assert.Equal(t, 0, b.Points)
}

func TestApplyResultDraw(t *testing.T) {
	a := &models.StandingsRow{TeamID: 1}
	b := &models.StandingsRow{TeamID: 2}

	ApplyResult(a, b, 2, 2)

	for _, row := range []*models.StandingsRow{a, b} {
		assert.Equal(t, 1, row.Draws)
		assert.Equal(t, 1, row.Points)
		assert.Equal(t, 0, row.GoalDifference)
	}
}

func TestApplyResultInvariantsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := &models.StandingsRow{TeamID: 1}
	b := &models.StandingsRow{TeamID: 2}

	for i := 0; i < 500; i++ {
		ApplyResult(a, b, rng.Intn(6), rng.Intn(6))
		for _, row := range []*models.StandingsRow{a, b} {
			assert.Equal(t, row.GoalsFor-row.GoalsAgainst, row.GoalDifference)
			assert.Equal(t, row.Played, row.Wins+row.Draws+row.Losses)
		}
	}
}

func TestRevertResultRestoresPreMatchState(t *testing.T) {
	a := &models.StandingsRow{TeamID: 1}
	b := &models.StandingsRow{TeamID: 2}
	ApplyResult(a, b, 2, 0)
	ApplyResult(a, b, 1, 1)

	before := *a
	beforeB := *b

	// Correction cycle: revert the wrong score, apply the right one, then
	// undo the whole correction again.
	ApplyResult(a, b, 4, 2)
	RevertResult(a, b, 4, 2)

	assert.Equal(t, before, *a)
	assert.Equal(t, beforeB, *b)
}

func TestRankOrdersByPointsThenDifferenceThenScored(t *testing.T) {
	// Points 6,6,3 with goal differences +2,+5,-1: the +5 team wins the
	// head-to-head on points tie.
	rows := []*models.StandingsRow{
		{TeamID: 1, Points: 6, GoalDifference: 2, GoalsFor: 8},
		{TeamID: 2, Points: 6, GoalDifference: 5, GoalsFor: 9},
		{TeamID: 3, Points: 3, GoalDifference: -1, GoalsFor: 4},
	}

	ranked := Rank(rows)

	require.Len(t, ranked, 3)
	assert.Equal(t, 2, ranked[0].TeamID)
	assert.Equal(t, 1, ranked[1].TeamID)
	assert.Equal(t, 3, ranked[2].TeamID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Position, ranked[1].Position, ranked[2].Position})
}

func TestRankGoalsForBreaksDifferenceTie(t *testing.T) {
	rows := []*models.StandingsRow{
		{TeamID: 1, Points: 4, GoalDifference: 1, GoalsFor: 3},
		{TeamID: 2, Points: 4, GoalDifference: 1, GoalsFor: 7},
	}
	ranked := Rank(rows)
	assert.Equal(t, 2, ranked[0].TeamID)
}

func TestRankFullTiesKeepInputOrderWithDistinctPositions(t *testing.T) {
	rows := []*models.StandingsRow{
		{TeamID: 5},
		{TeamID: 9},
		{TeamID: 2},
	}
	ranked := Rank(rows)

	// No shared rank numbers even on a complete tie; stable order decides.
	assert.Equal(t, 5, ranked[0].TeamID)
	assert.Equal(t, 9, ranked[1].TeamID)
	assert.Equal(t, 2, ranked[2].TeamID)
	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, 2, ranked[1].Position)
	assert.Equal(t, 3, ranked[2].Position)
}

func TestRankIdempotent(t *testing.T) {
	rows := []*models.StandingsRow{
		{TeamID: 1, Points: 7, GoalDifference: 3, GoalsFor: 10},
		{TeamID: 2, Points: 7, GoalDifference: 3, GoalsFor: 10},
		{TeamID: 3, Points: 1, GoalDifference: -6, GoalsFor: 2},
	}

	first := Rank(rows)
	order := []int{first[0].TeamID, first[1].TeamID, first[2].TeamID}
	positions := []int{first[0].Position, first[1].Position, first[2].Position}

	second := Rank(first)
	assert.Equal(t, order, []int{second[0].TeamID, second[1].TeamID, second[2].TeamID})
	assert.Equal(t, positions, []int{second[0].Position, second[1].Position, second[2].Position})
}
