package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/access/controller"
	"gatekeeper_backend/internals/middlewares"
)

// AccessRoutes registers the public scan endpoint.
func AccessRoutes(app fiber.Router, db *gorm.DB) {
	ac := controller.NewAccessController(db)
	app.Post("/api/access/scan", middlewares.ScanRateLimiter(), ac.Scan)
}
