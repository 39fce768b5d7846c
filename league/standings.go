package league

import (
	"sort"

	"github.com/JDR69/DeporteDubss/models"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// ApplyResult folds one match result into both teams' standings rows.
// goalsA belong to row a, goalsB to row b; which side was at home is the
// caller's concern. Only the two rows are mutated.
func ApplyResult(a, b *models.StandingsRow, goalsA, goalsB int) {
	applySide(a, goalsA, goalsB)
	applySide(b, goalsB, goalsA)
}

// RevertResult removes a previously applied result from both rows, restoring
// their pre-match state. Used when a result is corrected.
func RevertResult(a, b *models.StandingsRow, goalsA, goalsB int) {
	revertSide(a, goalsA, goalsB)
	revertSide(b, goalsB, goalsA)
}

func applySide(row *models.StandingsRow, goalsFor, goalsAgainst int) {
	row.Played++
	row.GoalsFor += goalsFor
	row.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		row.Wins++
		row.Points += pointsPerWin
	case goalsFor == goalsAgainst:
		row.Draws++
		row.Points += pointsPerDraw
	default:
		row.Losses++
	}
	// Always derived, never accumulated, so it cannot drift.
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
}

func revertSide(row *models.StandingsRow, goalsFor, goalsAgainst int) {
	row.Played--
	row.GoalsFor -= goalsFor
	row.GoalsAgainst -= goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		row.Wins--
		row.Points -= pointsPerWin
	case goalsFor == goalsAgainst:
		row.Draws--
		row.Points -= pointsPerDraw
	default:
		row.Losses--
	}
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
}

// Rank sorts the rows by points, goal difference and goals scored (all
// descending) and assigns strictly increasing 1-based positions. Remaining
// ties keep their input order and still get distinct positions; this matches
// the published tables, which never share a rank number.
func Rank(rows []*models.StandingsRow) []*models.StandingsRow {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	for i, row := range rows {
		row.Position = i + 1
	}
	return rows
}
