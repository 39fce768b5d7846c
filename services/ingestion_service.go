package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/JDR69/DeporteDubss/repositories"
)

// IngestionService imports externally recorded results from CSV. Rows name
// teams, not IDs, so the importer resolves each row against the schedule and
// tolerates files where the home/away order was flipped.
type IngestionService interface {
	ImportResults(ctx context.Context, championshipID int, reader io.Reader) (*ImportReport, error)
}

// ImportReport summarizes one import run. Failed rows never abort the run;
// each carries its own error.
type ImportReport struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ingestionService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	standings StandingsService
	logger    *slog.Logger
}

func NewIngestionService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	logger *slog.Logger,
) IngestionService {
	return &ingestionService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		standings: standings,
		logger:    logger,
	}
}

// Expected columns: home_team, away_team, home_goals, away_goals. A header
// row is detected and skipped when the goal columns are not numeric.
func (s *ingestionService) ImportResults(ctx context.Context, championshipID int, reader io.Reader) (*ImportReport, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = 4
	csvReader.TrimLeadingSpace = true

	report := &ImportReport{}
	line := 0

	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, ImportRowError{Line: line, Message: err.Error()})
			continue
		}

		row, err := parseResultRow(record)
		if err != nil {
			if line == 1 && errors.Is(err, errNonNumericGoals) {
				// Header row.
				continue
			}
			report.Skipped++
			report.Errors = append(report.Errors, ImportRowError{Line: line, Message: err.Error()})
			continue
		}

		if err := s.importRow(ctx, championshipID, row); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, ImportRowError{Line: line, Message: err.Error()})
			continue
		}
		report.Imported++
	}

	s.logger.InfoContext(ctx, "results imported",
		slog.Int("championship_id", championshipID),
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

type resultRow struct {
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
}

var errNonNumericGoals = errors.New("goal columns are not numeric")

func parseResultRow(record []string) (*resultRow, error) {
	home := strings.TrimSpace(record[0])
	away := strings.TrimSpace(record[1])
	if home == "" || away == "" {
		return nil, errors.New("team names cannot be empty")
	}

	homeGoals, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, errNonNumericGoals
	}
	awayGoals, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, errNonNumericGoals
	}
	if homeGoals < 0 || awayGoals < 0 {
		return nil, ErrNegativeGoals
	}

	return &resultRow{HomeTeam: home, AwayTeam: away, HomeGoals: homeGoals, AwayGoals: awayGoals}, nil
}

func (s *ingestionService) importRow(ctx context.Context, championshipID int, row *resultRow) error {
	homeTeam, err := s.teamRepo.GetByName(ctx, row.HomeTeam)
	if err != nil {
		return fmt.Errorf("unknown team %q", row.HomeTeam)
	}
	awayTeam, err := s.teamRepo.GetByName(ctx, row.AwayTeam)
	if err != nil {
		return fmt.Errorf("unknown team %q", row.AwayTeam)
	}

	homeGoals, awayGoals := row.HomeGoals, row.AwayGoals

	match, err := s.matchRepo.FindByPairing(ctx, championshipID, homeTeam.ID, awayTeam.ID)
	if errors.Is(err, repositories.ErrMatchNotFound) {
		// The file may list the pairing in the opposite orientation to the
		// schedule; swap sides and goals to match the stored fixture.
		match, err = s.matchRepo.FindByPairing(ctx, championshipID, awayTeam.ID, homeTeam.ID)
		homeGoals, awayGoals = awayGoals, homeGoals
	}
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return fmt.Errorf("no scheduled match between %q and %q", row.HomeTeam, row.AwayTeam)
		}
		return fmt.Errorf("failed to find match: %w", err)
	}

	_, err = s.standings.RecordResult(ctx, RecordResultInput{
		MatchID:   match.ID,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
	})
	if err != nil {
		return err
	}
	return nil
}
