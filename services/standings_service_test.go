package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScoredMatchRepo struct {
	repositories.MatchRepository
	match    models.Match
	getCalls int
	// When set, GetByID reports this result id from the second call on,
	// simulating a submission that landed between two loads.
	lateResultID *int
	replaced     [][3]int
}

func (f *fakeScoredMatchRepo) GetByID(_ context.Context, _ int) (*models.Match, error) {
	f.getCalls++
	m := f.match
	if f.getCalls > 1 && f.lateResultID != nil {
		m.ResultID = f.lateResultID
	}
	return &m, nil
}

func (f *fakeScoredMatchRepo) AttachResult(_ context.Context, _ repositories.SQLExecutor, _, resultID int) error {
	if f.match.ResultID != nil {
		return repositories.ErrMatchAlreadyPlayed
	}
	id := resultID
	f.match.ResultID = &id
	return nil
}

func (f *fakeScoredMatchRepo) ReplaceResult(_ context.Context, _ repositories.SQLExecutor, matchID, oldResultID, newResultID int) error {
	if f.match.ResultID == nil || *f.match.ResultID != oldResultID {
		return repositories.ErrMatchResultStale
	}
	id := newResultID
	f.match.ResultID = &id
	f.replaced = append(f.replaced, [3]int{matchID, oldResultID, newResultID})
	return nil
}

type fakeScheduleDayRepo struct {
	repositories.MatchDayRepository
}

func (f *fakeScheduleDayRepo) GetByID(_ context.Context, id int) (*models.MatchDay, error) {
	return &models.MatchDay{ID: id, ChampionshipID: 1}, nil
}

type fakeStandingRowRepo struct {
	repositories.StandingRepository
	rows []*models.StandingsRow
}

func (f *fakeStandingRowRepo) ListByChampionship(_ context.Context, _ int) ([]*models.StandingsRow, error) {
	return f.rows, nil
}

func (f *fakeStandingRowRepo) Update(_ context.Context, _ repositories.SQLExecutor, _ *models.StandingsRow) error {
	return nil
}

func (f *fakeStandingRowRepo) UpdatePositions(_ context.Context, _ repositories.SQLExecutor, _ []*models.StandingsRow) error {
	return nil
}

type fakeResultRowRepo struct {
	repositories.ResultRepository
	nextID  int
	results map[int]*models.Result
	deleted []int
}

func (f *fakeResultRowRepo) Create(_ context.Context, _ repositories.SQLExecutor, result *models.Result) error {
	f.nextID++
	result.ID = f.nextID
	f.results[result.ID] = &models.Result{ID: result.ID, HomeGoals: result.HomeGoals, AwayGoals: result.AwayGoals}
	return nil
}

func (f *fakeResultRowRepo) GetByID(_ context.Context, id int) (*models.Result, error) {
	result, ok := f.results[id]
	if !ok {
		return nil, repositories.ErrResultNotFound
	}
	cp := *result
	return &cp, nil
}

func (f *fakeResultRowRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := f.results[id]; !ok {
		return repositories.ErrResultNotFound
	}
	delete(f.results, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type standingsFixture struct {
	svc       StandingsService
	mock      sqlmock.Sqlmock
	matchRepo *fakeScoredMatchRepo
	standings *fakeStandingRowRepo
	results   *fakeResultRowRepo
}

// Match 5: team 1 at home against team 2, championship 1.
func newStandingsFixture(t *testing.T) *standingsFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	matchRepo := &fakeScoredMatchRepo{
		match: models.Match{ID: 5, MatchDayID: 3, HomeTeamID: 1, AwayTeamID: 2},
	}
	standings := &fakeStandingRowRepo{rows: []*models.StandingsRow{
		{ID: 1, ChampionshipID: 1, TeamID: 1},
		{ID: 2, ChampionshipID: 1, TeamID: 2},
	}}
	results := &fakeResultRowRepo{results: make(map[int]*models.Result)}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewStandingsService(db, standings, matchRepo, &fakeScheduleDayRepo{}, results, nil, nil, logger)

	return &standingsFixture{svc: svc, mock: mock, matchRepo: matchRepo, standings: standings, results: results}
}

func (f *standingsFixture) row(teamID int) *models.StandingsRow {
	for _, row := range f.standings.rows {
		if row.TeamID == teamID {
			return row
		}
	}
	return nil
}

func TestRecordResultRejectsSecondSubmission(t *testing.T) {
	f := newStandingsFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	match, err := f.svc.RecordResult(context.Background(), RecordResultInput{MatchID: 5, HomeGoals: 3, AwayGoals: 1})
	require.NoError(t, err)
	require.NotNil(t, match.ResultID)

	_, err = f.svc.RecordResult(context.Background(), RecordResultInput{MatchID: 5, HomeGoals: 0, AwayGoals: 0})
	assert.ErrorIs(t, err, ErrMatchAlreadyHasResult)

	// The match contributes exactly once to either table row.
	home, away := f.row(1), f.row(2)
	assert.Equal(t, 1, home.Played)
	assert.Equal(t, 3, home.Points)
	assert.Equal(t, 1, away.Played)
	assert.Equal(t, 0, away.Points)
	assert.Len(t, f.results.results, 1)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRecordResultRevalidatesAfterLocking(t *testing.T) {
	f := newStandingsFixture(t)
	resultID := 9
	f.matchRepo.lateResultID = &resultID

	// No transaction is expected: the reload inside the lock sees the result
	// that arrived after the first load and the call stops there.
	_, err := f.svc.RecordResult(context.Background(), RecordResultInput{MatchID: 5, HomeGoals: 2, AwayGoals: 2})
	assert.ErrorIs(t, err, ErrMatchAlreadyHasResult)

	home, away := f.row(1), f.row(2)
	assert.Equal(t, 0, home.Played)
	assert.Equal(t, 0, away.Played)
	assert.Empty(t, f.results.results)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCorrectResultSwapsResultRows(t *testing.T) {
	f := newStandingsFixture(t)

	// Match 5 was recorded 2-0; the table already reflects it.
	previousID := 7
	f.matchRepo.match.ResultID = &previousID
	f.results.nextID = 7
	f.results.results[7] = &models.Result{ID: 7, HomeGoals: 2, AwayGoals: 0}
	home, away := f.row(1), f.row(2)
	home.Played, home.Wins, home.Points, home.GoalsFor, home.GoalDifference = 1, 1, 3, 2, 2
	away.Played, away.Losses, away.GoalsAgainst, away.GoalDifference = 1, 1, 2, -2

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	match, err := f.svc.CorrectResult(context.Background(), RecordResultInput{MatchID: 5, HomeGoals: 1, AwayGoals: 1})
	require.NoError(t, err)

	// The old row is gone and the match points at a freshly created one.
	require.NotNil(t, match.ResultID)
	assert.Equal(t, 8, *match.ResultID)
	assert.Equal(t, [][3]int{{5, 7, 8}}, f.matchRepo.replaced)
	assert.Equal(t, []int{7}, f.results.deleted)
	require.Contains(t, f.results.results, 8)
	assert.NotContains(t, f.results.results, 7)

	// 2-0 reverted, 1-1 applied.
	assert.Equal(t, 1, home.Played)
	assert.Equal(t, 0, home.Wins)
	assert.Equal(t, 1, home.Draws)
	assert.Equal(t, 1, home.Points)
	assert.Equal(t, 1, home.GoalsFor)
	assert.Equal(t, 0, home.GoalDifference)
	assert.Equal(t, 1, away.Draws)
	assert.Equal(t, 1, away.Points)
	assert.Equal(t, 1, away.GoalsAgainst)
	assert.Equal(t, 0, away.GoalDifference)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCorrectResultRequiresExistingResult(t *testing.T) {
	f := newStandingsFixture(t)

	_, err := f.svc.CorrectResult(context.Background(), RecordResultInput{MatchID: 5, HomeGoals: 1, AwayGoals: 0})
	assert.ErrorIs(t, err, ErrMatchHasNoResult)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
