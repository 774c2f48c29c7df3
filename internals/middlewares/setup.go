package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMW "gatekeeper_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the app-wide middleware chain.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMW.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
