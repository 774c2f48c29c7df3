package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/activity/controller"
)

// ActivityAdminRoutes registers the ledger read/export endpoints.
func ActivityAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ac := controller.NewActivityController(db)

	activity := admin.Group("/activity")
	activity.Get("/", ac.SearchActivity)
	activity.Get("/recent", ac.RecentActivity)
	activity.Get("/export", ac.ExportActivity)
}
