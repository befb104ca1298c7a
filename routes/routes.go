package routes

import (
	"github.com/Olzhas-T/contest-system/handlers"
	"github.com/Olzhas-T/contest-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	adminHandler *handlers.AdminHandler,
	formationHandler *handlers.FormationHandler,
	notificationHandler *handlers.NotificationHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Живые события соревнования.
	router.Get("/ws/competitions/{competitionID}", webSocketHandler.ServeWs)

	router.Route("/competitions/{competitionID}", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		// Участник и его команда.
		r.Post("/enter", teamHandler.EnterCompetition)
		r.Get("/team", teamHandler.GetMyTeam)
		r.Delete("/team", teamHandler.Withdraw)
		r.Get("/team/code", teamHandler.GetJoinCode)
		r.Post("/team/join", teamHandler.JoinByCode)
		r.Post("/team/name", teamHandler.RequestNameChange)
		r.Post("/team/site", teamHandler.RequestSiteChange)
		r.Post("/team/logo", teamHandler.UploadLogo)

		r.Get("/notifications", notificationHandler.ListMyNotifications)

		// Операции тренера, администратора и координатора площадки.
		// Роли проверяются в сервисном слое по данным соревнования.
		r.Post("/teams/name-requests/resolve", adminHandler.ResolveNameChanges)
		r.Post("/teams/site-requests/resolve", adminHandler.ResolveSiteChanges)
		r.Post("/teams/seats", adminHandler.AssignSeats)
		r.Post("/teams/approve", adminHandler.ApproveRegistration)
		r.Post("/teams/register", adminHandler.RegisterTeams)

		r.Post("/coaches/{coachID}/formation", formationHandler.RunFormation)
	})
}
