package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/imports/controller"
	"gatekeeper_backend/internals/helpers/assets"
)

// ImportAdminRoutes registers the bulk import endpoints.
func ImportAdminRoutes(admin fiber.Router, db *gorm.DB, store *assets.Store) {
	ic := controller.NewImportController(db, store)

	imports := admin.Group("/imports")
	imports.Post("/analyze", ic.Analyze)
	imports.Post("/commit", ic.Commit)
}
