package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/S-Matheka/patrons-cup-live-sub000/handlers"
	"github.com/S-Matheka/patrons-cup-live-sub000/middleware"
	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

// SetupRoutes mounts the full HTTP surface. Spectator reads are public;
// score entry needs a scorer or admin token; fixture and roster management
// is admin only.
func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	stablefordHandler *handlers.StablefordHandler,
	webSocketHandler *handlers.WebSocketHandler,
	jwtSecret string,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.Authorize(models.RoleAdmin)
	scorers := middleware.Authorize(models.RoleAdmin, models.RoleScorer)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{teamID}", teamHandler.GetByID)
		r.Get("/{teamID}/players", playerHandler.ListByTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", teamHandler.Create)
			r.Put("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", playerHandler.Create)
			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Group(func(r chi.Router) {
				r.Use(scorers)

				r.Post("/{matchID}/score", matchHandler.EnterScore)
			})

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Post("/", matchHandler.Create)
				r.Put("/{matchID}", matchHandler.Update)
				r.Delete("/{matchID}", matchHandler.Delete)
				r.Put("/{matchID}/status", matchHandler.SetStatus)
				r.Post("/{matchID}/clear", matchHandler.ClearScores)
			})
		})
	})

	router.Route("/divisions/{division}", func(r chi.Router) {
		r.Get("/teams", teamHandler.List)
		r.Get("/matches", matchHandler.ListByDivision)
		r.Get("/standings", standingsHandler.GetByDivision)
		r.Get("/standings/live", standingsHandler.GetLiveByDivision)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/standings/refresh", standingsHandler.Refresh)
		})
	})

	router.Get("/draw", matchHandler.Draw)

	router.Route("/stableford", func(r chi.Router) {
		r.Get("/leaderboard", stablefordHandler.Leaderboard)
		r.Get("/teams", stablefordHandler.TeamLeaderboard)
		r.Get("/rounds/{round}/leaderboard", stablefordHandler.RoundLeaderboard)
		r.Get("/players/{playerID}/rounds/{round}", stablefordHandler.GetCard)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(scorers)

			r.Post("/players/{playerID}/rounds/{round}", stablefordHandler.OpenCard)
			r.Put("/players/{playerID}/rounds/{round}/gross", stablefordHandler.EnterGross)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Post("/auth/users", authHandler.CreateUser)
		r.Post("/standings/refresh", standingsHandler.Refresh)
	})

	router.Get("/ws/divisions/{division}", webSocketHandler.ServeDivision)
	router.Get("/ws/stableford", webSocketHandler.ServeStableford)
}
