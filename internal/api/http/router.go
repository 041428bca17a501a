package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	PasswordReset  *handlers.PasswordResetHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes under the /api/v1 prefix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)
	users.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)
	users.Put("/me", cfg.AuthMiddleware.Handle, cfg.Users.UpdateMe)
	users.Get("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Users.List)

	resets := api.Group("/password-reset")
	resets.Post("/", cfg.PasswordReset.RequestReset)
	resets.Post("/updatePassword", cfg.PasswordReset.UpdatePassword)

	tasks := api.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", cfg.Tasks.Update)
	tasks.Delete("/:id", cfg.Tasks.Delete)
}
