package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"golang.org/x/sync/errgroup"
)

// ReportService backs the administrative overview endpoints.
type ReportService interface {
	Summary(ctx context.Context) (*SummaryReport, error)
	AuditLog(ctx context.Context, filter repositories.ListAuditFilter) ([]*models.AuditEntry, error)
}

type SummaryReport struct {
	Users           int `json:"users"`
	Teams           int `json:"teams"`
	Championships   int `json:"championships"`
	MatchesPlayed   int `json:"matches_played"`
	MatchesTotal    int `json:"matches_total"`
	IncidentsLogged int `json:"incidents_logged"`
}

type reportService struct {
	db        *sql.DB
	auditRepo repositories.AuditRepository
}

func NewReportService(db *sql.DB, auditRepo repositories.AuditRepository) ReportService {
	return &reportService{db: db, auditRepo: auditRepo}
}

func (s *reportService) Summary(ctx context.Context) (*SummaryReport, error) {
	report := &SummaryReport{}

	g, gctx := errgroup.WithContext(ctx)
	count := func(query string, dest *int) func() error {
		return func() error {
			return s.db.QueryRowContext(gctx, query).Scan(dest)
		}
	}

	g.Go(count(`SELECT COUNT(*) FROM users`, &report.Users))
	g.Go(count(`SELECT COUNT(*) FROM teams`, &report.Teams))
	g.Go(count(`SELECT COUNT(*) FROM championships`, &report.Championships))
	g.Go(count(`SELECT COUNT(*) FROM matches`, &report.MatchesTotal))
	g.Go(count(`SELECT COUNT(*) FROM matches WHERE result_id IS NOT NULL`, &report.MatchesPlayed))
	g.Go(count(`SELECT COUNT(*) FROM incidents`, &report.IncidentsLogged))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build summary report: %w", err)
	}
	return report, nil
}

func (s *reportService) AuditLog(ctx context.Context, filter repositories.ListAuditFilter) ([]*models.AuditEntry, error) {
	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
