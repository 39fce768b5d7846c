package routes

import (
	"github.com/JDR69/DeporteDubss/handlers"
	"github.com/JDR69/DeporteDubss/middleware"
	"github.com/JDR69/DeporteDubss/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Team         *handlers.TeamHandler
	Sport        *handlers.SportHandler
	Venue        *handlers.VenueHandler
	Championship *handlers.ChampionshipHandler
	Fixture      *handlers.FixtureHandler
	Result       *handlers.ResultHandler
	Incident     *handlers.IncidentHandler
	Ingestion    *handlers.IngestionHandler
	Report       *handlers.ReportHandler
	WebSocket    *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, auth *middleware.Auth, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// Public endpoints.
	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/championships", h.Championship.List)
	router.Get("/championships/{championshipID}", h.Championship.GetByID)
	router.Get("/championships/{championshipID}/teams", h.Championship.ListEnrolledTeams)
	router.Get("/championships/{championshipID}/fixture", h.Fixture.Get)
	router.Get("/championships/{championshipID}/standings", h.Result.Standings)
	router.Get("/championships/{championshipID}/incidents", h.Incident.ListByChampionship)

	router.Get("/teams", h.Team.List)
	router.Get("/teams/{teamID}", h.Team.GetByID)
	router.Get("/teams/{teamID}/players", h.Team.ListPlayers)

	router.Get("/sports", h.Sport.List)
	router.Get("/sports/{sportID}", h.Sport.GetByID)
	router.Get("/categories", h.Sport.ListCategories)

	router.Get("/venues", h.Venue.List)
	router.Get("/venues/{venueID}", h.Venue.GetByID)

	router.Get("/matches/{matchID}/incidents", h.Incident.ListByMatch)

	// Live updates.
	router.Get("/ws/championships/{championshipID}", h.WebSocket.ServeWs)

	// Authenticated endpoints.
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/users/me", h.User.Me)
		r.Post("/auth/password", h.Auth.ChangePassword)
		r.Put("/users/{userID}", h.User.UpdateProfile)

		// Delegates report results and incidents for their matches;
		// organizers and admins manage everything below.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin, models.RoleOrganizer, models.RoleDelegate))

			r.Post("/matches/{matchID}/result", h.Result.Record)
			r.Post("/matches/{matchID}/incidents", h.Incident.Report)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin, models.RoleOrganizer))

			r.Post("/championships", h.Championship.Create)
			r.Put("/championships/{championshipID}", h.Championship.Update)
			r.Patch("/championships/{championshipID}/status", h.Championship.UpdateStatus)
			r.Delete("/championships/{championshipID}", h.Championship.Delete)
			r.Post("/championships/{championshipID}/logo", h.Championship.UploadLogo)

			r.Post("/championships/{championshipID}/teams", h.Championship.EnrollTeam)
			r.Delete("/championships/{championshipID}/teams/{teamID}", h.Championship.WithdrawTeam)

			r.Post("/championships/{championshipID}/fixture", h.Fixture.Generate)
			r.Post("/championships/{championshipID}/standings/recompute", h.Result.Recompute)
			r.Post("/championships/{championshipID}/results/import", h.Ingestion.ImportResults)

			r.Patch("/matchdays/{matchDayID}", h.Fixture.RescheduleMatchDay)
			r.Patch("/matches/{matchID}/venue", h.Fixture.AssignMatchVenue)
			r.Put("/matches/{matchID}/result", h.Result.Correct)

			r.Post("/teams", h.Team.Create)
			r.Put("/teams/{teamID}", h.Team.Update)
			r.Delete("/teams/{teamID}", h.Team.Delete)
			r.Post("/teams/{teamID}/logo", h.Team.UploadLogo)
			r.Post("/teams/{teamID}/players", h.Team.AddPlayer)
			r.Delete("/players/{userID}", h.Team.RemovePlayer)

			r.Post("/venues", h.Venue.Create)
			r.Put("/venues/{venueID}", h.Venue.Update)
			r.Delete("/venues/{venueID}", h.Venue.Delete)

			r.Delete("/incidents/{incidentID}", h.Incident.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authorize(models.RoleAdmin))

			r.Get("/users", h.User.List)
			r.Get("/users/{userID}", h.User.GetByID)
			r.Patch("/users/{userID}/role", h.User.SetRole)
			r.Delete("/users/{userID}", h.User.Deactivate)

			r.Post("/categories", h.Sport.CreateCategory)
			r.Post("/sports", h.Sport.Create)
			r.Put("/sports/{sportID}", h.Sport.Update)
			r.Delete("/sports/{sportID}", h.Sport.Delete)

			r.Get("/reports/summary", h.Report.Summary)
			r.Get("/reports/audit", h.Report.AuditLog)
		})
	})
}
