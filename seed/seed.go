// Package seed populates an empty database with demo data: users of every
// role, a venue and team catalog, and one championship with a generated
// fixture and random results.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/JDR69/DeporteDubss/league"
	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "demo1234"

var teamNames = []string{
	"Halcones", "Cóndores", "Pumas", "Jaguares",
	"Tiburones", "Águilas", "Leones", "Zorros",
}

var venueNames = []string{
	"Coliseo Central", "Cancha Norte", "Polideportivo Sur",
}

func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	userRepo := repositories.NewPostgresUserRepository(db)
	teamRepo := repositories.NewPostgresTeamRepository(db)
	sportRepo := repositories.NewPostgresSportRepository(db)
	venueRepo := repositories.NewPostgresVenueRepository(db)
	championshipRepo := repositories.NewPostgresChampionshipRepository(db)
	matchDayRepo := repositories.NewPostgresMatchDayRepository(db)
	matchRepo := repositories.NewPostgresMatchRepository(db)
	resultRepo := repositories.NewPostgresResultRepository(db)
	standingRepo := repositories.NewPostgresStandingRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	admin := &models.User{
		Role: models.RoleAdmin, FirstName: "Ana", LastName: "Rojas",
		Email: "admin@demo.local", PasswordHash: string(hash), Active: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	organizer := &models.User{
		Role: models.RoleOrganizer, FirstName: "Luis", LastName: "Mendoza",
		Email: "organizer@demo.local", PasswordHash: string(hash), Active: true,
	}
	if err := userRepo.Create(ctx, organizer); err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}

	category := &models.Category{Name: "Deportes de equipo"}
	if err := sportRepo.CreateCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	sport := &models.Sport{CategoryID: category.ID, Name: "Fútbol"}
	if err := sportRepo.Create(ctx, sport); err != nil {
		return fmt.Errorf("failed to create sport: %w", err)
	}

	for _, name := range venueNames {
		venue := &models.Venue{Name: name, Active: true}
		if err := venueRepo.Create(ctx, venue); err != nil {
			return fmt.Errorf("failed to create venue %q: %w", name, err)
		}
	}

	teams := make([]models.Team, 0, len(teamNames))
	for i, name := range teamNames {
		delegate := &models.User{
			Role:      models.RoleDelegate,
			FirstName: fmt.Sprintf("Delegado%d", i+1),
			LastName:  name,
			Email:     fmt.Sprintf("delegate%d@demo.local", i+1),
			PasswordHash: string(hash), Active: true,
		}
		if err := userRepo.Create(ctx, delegate); err != nil {
			return fmt.Errorf("failed to create delegate for %q: %w", name, err)
		}

		team := &models.Team{Name: name, DelegateID: delegate.ID, Active: true}
		if err := teamRepo.Create(ctx, team); err != nil {
			return fmt.Errorf("failed to create team %q: %w", name, err)
		}
		teams = append(teams, *team)
	}

	start := time.Now().AddDate(0, 0, -7)
	championship := &models.Championship{
		OrganizerID: organizer.ID,
		SportID:     sport.ID,
		Name:        "Liga Apertura Demo",
		StartDate:   &start,
		Status:      models.ChampionshipPending,
	}
	if err := championshipRepo.Create(ctx, championship); err != nil {
		return fmt.Errorf("failed to create championship: %w", err)
	}

	for _, team := range teams {
		if err := championshipRepo.EnrollTeam(ctx, nil, championship.ID, team.ID); err != nil {
			return fmt.Errorf("failed to enroll %q: %w", team.Name, err)
		}
		row := &models.StandingsRow{ChampionshipID: championship.ID, TeamID: team.ID}
		if err := standingRepo.Create(ctx, nil, row); err != nil {
			return fmt.Errorf("failed to create standings row for %q: %w", team.Name, err)
		}
	}

	rounds, err := league.GenerateRoundRobin(teams)
	if err != nil {
		return fmt.Errorf("failed to generate schedule: %w", err)
	}
	venue, err := venueRepo.GetDefault(ctx)
	if err != nil {
		return fmt.Errorf("failed to pick default venue: %w", err)
	}

	standings := make(map[int]*models.StandingsRow, len(teams))
	rows, err := standingRepo.ListByChampionship(ctx, championship.ID)
	if err != nil {
		return fmt.Errorf("failed to load standings: %w", err)
	}
	for _, row := range rows {
		standings[row.TeamID] = row
	}

	played := 0
	for _, round := range rounds {
		date := start.AddDate(0, 0, 7*(round.Number-1))
		md := &models.MatchDay{ChampionshipID: championship.ID, Number: round.Number, Date: &date}
		if err := matchDayRepo.Create(ctx, nil, md); err != nil {
			return fmt.Errorf("failed to create match day %d: %w", round.Number, err)
		}

		for _, pairing := range round.Pairings {
			match := &models.Match{
				MatchDayID: md.ID,
				VenueID:    venue.ID,
				HomeTeamID: pairing.HomeTeamID,
				AwayTeamID: pairing.AwayTeamID,
			}
			if err := matchRepo.Create(ctx, nil, match); err != nil {
				return fmt.Errorf("failed to create match: %w", err)
			}

			// Only the first half of the season has results, so the demo
			// shows both played and upcoming match days.
			if round.Number > len(rounds)/2 {
				continue
			}
			result := &models.Result{HomeGoals: rng.Intn(5), AwayGoals: rng.Intn(5)}
			if err := resultRepo.Create(ctx, nil, result); err != nil {
				return fmt.Errorf("failed to create result: %w", err)
			}
			if err := matchRepo.AttachResult(ctx, nil, match.ID, result.ID); err != nil {
				return fmt.Errorf("failed to attach result: %w", err)
			}

			home, away := standings[match.HomeTeamID], standings[match.AwayTeamID]
			league.ApplyResult(home, away, result.HomeGoals, result.AwayGoals)
			played++
		}
	}

	ranked := league.Rank(rows)
	for _, row := range ranked {
		if err := standingRepo.Update(ctx, nil, row); err != nil {
			return fmt.Errorf("failed to update standings row: %w", err)
		}
	}

	if err := championshipRepo.UpdateStatus(ctx, nil, championship.ID, models.ChampionshipInProgress); err != nil {
		return fmt.Errorf("failed to update championship status: %w", err)
	}

	logger.Info("demo data created",
		slog.Int("teams", len(teams)),
		slog.Int("match_days", len(rounds)),
		slog.Int("results", played),
		slog.String("admin_email", admin.Email),
	)
	return nil
}
