package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-platform/docs"
	"github.com/Dosada05/tournament-platform/handlers"
	"github.com/Dosada05/tournament-platform/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Tournament   *handlers.TournamentHandler
	Team         *handlers.TeamHandler
	Registration *handlers.RegistrationHandler
	Match        *handlers.MatchHandler
	Export       *handlers.ExportHandler
	Health       *handlers.HealthHandler
	WebSocket    *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/", h.Health.Index)
	router.Get("/download", h.Export.Download)
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Get("/swagger/doc.json", docs.Handler)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Post("/register", h.Registration.Register)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListHandler)
			r.Get("/{tournamentID}/matches", h.Tournament.ListMatchesHandler)
			r.Post("/{tournamentID}/round-robin", h.Tournament.RoundRobinHandler)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeams)
			r.Post("/", h.Team.CreateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatches)
			r.Post("/", h.Match.CreateMatch)
		})

		r.Post("/match-result", h.Match.RecordResult)
		r.Delete("/match-result/{matchID}", h.Match.RemoveResult)
		r.Delete("/match/{matchID}", h.Match.DeleteMatch)
	})
}
