package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cityworks/complaint-service/internal/api/http/handlers"
	"github.com/cityworks/complaint-service/internal/auth"
	"github.com/cityworks/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Complaints     *handlers.ComplaintsHandler
	Leaderboard    *handlers.LeaderboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Session.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Session.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Session.Me)

	app.Get("/leaderboard", cfg.Leaderboard.Leaderboard)
	app.Get("/track", cfg.Complaints.Track)

	complaints := app.Group("/complaints")
	complaints.Get("/:id", cfg.Complaints.GetComplaint)
	complaints.Post("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser, domain.RoleAdmin), cfg.Complaints.CreateComplaint)

	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireRole())
	me.Get("/complaints", cfg.Complaints.ListMine)
	me.Get("/stats", cfg.Complaints.MyStats)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/complaints", cfg.Complaints.ListAll)
	admin.Patch("/complaints/:id/status", cfg.Complaints.UpdateStatus)
	admin.Get("/stats", cfg.Complaints.FleetStats)
}
