package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bandscore/bandscore-api/internal/config"
	"github.com/bandscore/bandscore-api/internal/handler"
	"github.com/bandscore/bandscore-api/internal/middleware"
	"github.com/bandscore/bandscore-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	WritingHandler *handler.WritingHandler
	CreditsHandler *handler.CreditsHandler
	ChatHandler    *handler.ChatHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.WritingHandler != nil {
		writing := app.Group("/api/v1/writing", jwtMiddleware)
		deps.WritingHandler.Register(writing, middleware.RateLimit("writing_score", 5, time.Minute))
	}

	if deps.CreditsHandler != nil {
		credits := app.Group("/api/v1/credits", jwtMiddleware)
		deps.CreditsHandler.Register(credits, middleware.RequireRole("admin"))
	}

	if deps.ChatHandler != nil {
		chat := app.Group("/api/v1/chat", jwtMiddleware)
		deps.ChatHandler.Register(chat)
	}
}
