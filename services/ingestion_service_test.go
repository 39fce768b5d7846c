package services

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	repositories.TeamRepository
	byName map[string]*models.Team
}

func (f *fakeTeamRepo) GetByName(_ context.Context, name string) (*models.Team, error) {
	team, ok := f.byName[name]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	// keyed by "home-away" team IDs
	matches map[[2]int]*models.Match
}

func (f *fakeMatchRepo) FindByPairing(_ context.Context, _, homeTeamID, awayTeamID int) (*models.Match, error) {
	match, ok := f.matches[[2]int{homeTeamID, awayTeamID}]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

type recordedResult struct {
	MatchID   int
	HomeGoals int
	AwayGoals int
}

type fakeStandingsService struct {
	StandingsService
	recorded []recordedResult
}

func (f *fakeStandingsService) RecordResult(_ context.Context, input RecordResultInput) (*models.Match, error) {
	f.recorded = append(f.recorded, recordedResult{
		MatchID:   input.MatchID,
		HomeGoals: input.HomeGoals,
		AwayGoals: input.AwayGoals,
	})
	return &models.Match{ID: input.MatchID}, nil
}

func newIngestionFixture() (*fakeStandingsService, IngestionService) {
	teams := &fakeTeamRepo{byName: map[string]*models.Team{
		"Halcones": {ID: 1, Name: "Halcones"},
		"Pumas":    {ID: 2, Name: "Pumas"},
		"Zorros":   {ID: 3, Name: "Zorros"},
	}}
	// Scheduled matches: Halcones(1) hosts Pumas(2); Zorros(3) hosts Halcones(1).
	matches := &fakeMatchRepo{matches: map[[2]int]*models.Match{
		{1, 2}: {ID: 10, HomeTeamID: 1, AwayTeamID: 2},
		{3, 1}: {ID: 11, HomeTeamID: 3, AwayTeamID: 1},
	}}
	standings := &fakeStandingsService{}
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	return standings, NewIngestionService(teams, matches, standings, logger)
}

func TestImportResultsDirectPairing(t *testing.T) {
	standings, svc := newIngestionFixture()

	csv := "Halcones,Pumas,3,1\n"
	report, err := svc.ImportResults(context.Background(), 1, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, standings.recorded, 1)
	assert.Equal(t, recordedResult{MatchID: 10, HomeGoals: 3, AwayGoals: 1}, standings.recorded[0])
}

func TestImportResultsReversedPairingSwapsGoals(t *testing.T) {
	standings, svc := newIngestionFixture()

	// The schedule has Zorros at home against Halcones; this file lists the
	// pairing the other way around.
	csv := "Halcones,Zorros,2,5\n"
	report, err := svc.ImportResults(context.Background(), 1, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	require.Len(t, standings.recorded, 1)
	assert.Equal(t, recordedResult{MatchID: 11, HomeGoals: 5, AwayGoals: 2}, standings.recorded[0])
}

func TestImportResultsSkipsHeaderRow(t *testing.T) {
	standings, svc := newIngestionFixture()

	csv := "home_team,away_team,home_goals,away_goals\nHalcones,Pumas,1,1\n"
	report, err := svc.ImportResults(context.Background(), 1, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, standings.recorded, 1)
}

func TestImportResultsCollectsRowErrors(t *testing.T) {
	standings, svc := newIngestionFixture()

	csv := strings.Join([]string{
		"Halcones,Pumas,3,1",       // ok
		"Fantasmas,Pumas,1,0",      // unknown team
		"Pumas,Zorros,2,2",         // no scheduled match
		"Halcones,Pumas,-1,0",      // negative goals
		"Zorros,Halcones,abc,0",    // non-numeric
	}, "\n") + "\n"

	report, err := svc.ImportResults(context.Background(), 1, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 4, report.Skipped)
	assert.Len(t, report.Errors, 4)
	assert.Len(t, standings.recorded, 1)

	lines := make([]int, 0, len(report.Errors))
	for _, rowErr := range report.Errors {
		lines = append(lines, rowErr.Line)
	}
	assert.Equal(t, []int{2, 3, 4, 5}, lines)
}

func TestImportResultsEmptyFile(t *testing.T) {
	_, svc := newIngestionFixture()

	report, err := svc.ImportResults(context.Background(), 1, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.Skipped)
}
