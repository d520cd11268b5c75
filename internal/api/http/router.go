package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-admin/internal/api/http/handlers"
	"github.com/spec-kit/directory-admin/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.AdminUsersHandler
	Verifications  *handlers.VerificationHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())

	users := admin.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/summary", cfg.Users.Summaries)
	users.Patch("/:id", cfg.Users.Patch)
	users.Delete("/:id", cfg.Users.Delete)
	users.Post("/:id/ban", cfg.Users.Ban)
	users.Post("/:id/unban", cfg.Users.Unban)

	verifications := admin.Group("/verifications")
	verifications.Put("/", cfg.Verifications.SetStatus)
	verifications.Get("/:role", cfg.Verifications.ListSubmissions)

	stats := admin.Group("/stats")
	stats.Get("/counts", cfg.Stats.Counts)
	stats.Get("/percentages", cfg.Stats.Percentages)
	stats.Get("/population", cfg.Stats.Population)
}
