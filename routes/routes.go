package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sarzhanov/fishing-live/handlers"
	"github.com/sarzhanov/fishing-live/middleware"
	"github.com/sarzhanov/fishing-live/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	competitorHandler *handlers.CompetitorHandler,
	entryHandler *handlers.EntryHandler,
	standingsHandler *handlers.StandingsHandler,
	settingsHandler *handlers.SettingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Post("/auth/login", authHandler.Login)

	// Публичные маршруты для табло и зрителей
	router.Get("/standings", standingsHandler.GetStandings)
	router.Get("/standings/general", standingsHandler.GetGeneralRanking)
	router.Get("/standings/{sector}", standingsHandler.GetStandings)
	router.Get("/settings", settingsHandler.Get)
	router.Get("/ws/standings/{room}", webSocketHandler.ServeStandings)

	router.Route("/competitors", func(r chi.Router) {
		r.Get("/", competitorHandler.List)
		r.Get("/{competitorID}", competitorHandler.GetByID)
		r.Get("/{competitorID}/standing", standingsHandler.GetCompetitorStanding)

		// Только для администратора
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Post("/", competitorHandler.Create)
			r.Put("/{competitorID}", competitorHandler.Update)
			r.Delete("/{competitorID}", competitorHandler.Delete)
			r.Patch("/{competitorID}/status", competitorHandler.SetStatus)
			r.Post("/{competitorID}/photo", competitorHandler.UploadPhoto)
		})
	})

	router.Route("/entries", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(models.RoleJudge, models.RoleAdmin))

		r.Post("/hourly", entryHandler.CreateHourlyEntry)
		r.Put("/hourly/{entryID}", entryHandler.CorrectHourlyEntry)
		r.Post("/hourly/{entryID}/submit", entryHandler.SubmitHourlyEntry)
		r.Post("/hourly/{entryID}/lock", entryHandler.LockHourlyEntry)
		r.Get("/hourly/competitors/{competitorID}", entryHandler.ListHourlyEntries)

		r.Post("/big-catch", entryHandler.RecordBigCatch)
		r.Post("/big-catch/competitors/{competitorID}/submit", entryHandler.SubmitBigCatch)
		r.Post("/big-catch/competitors/{competitorID}/lock", entryHandler.LockBigCatch)
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Put("/settings", settingsHandler.Update)
		r.Post("/settings/advance-hour", settingsHandler.AdvanceHour)

		r.Post("/users", authHandler.Register)
		r.Get("/users", authHandler.ListUsers)
		r.Delete("/users/{userID}", authHandler.RemoveUser)
	})
}
