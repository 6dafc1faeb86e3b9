package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"torneo-mus/handlers"
	"torneo-mus/middleware"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Team      *handlers.TeamHandler
	Match     *handlers.MatchHandler
	Ranking   *handlers.RankingHandler
	Dashboard *handlers.DashboardHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAdmin := func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.RequireAdmin)
	}

	router.Post("/auth/admin/login", h.Auth.AdminLogin)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamID}", h.Team.GetTeamByID)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", h.Team.CreateTeam)
			r.Post("/{teamID}/logo", h.Team.UploadLogo)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{matchID}", h.Match.GetMatchByID)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/generate", h.Match.GenerateSchedule)
			r.Put("/{matchID}/result", h.Match.SetResult)
			r.Post("/{matchID}/games", h.Match.AddGame)
			r.Put("/{matchID}/games/{gameID}", h.Match.EditGame)
			r.Delete("/{matchID}/games/{gameID}", h.Match.DeleteGame)
		})
	})

	router.Get("/ranking", h.Ranking.GetRanking)
	router.Get("/dashboard", h.Dashboard.GetStats)
	router.Get("/ws/live", h.WebSocket.Serve)

	return router
}
