package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/people/controller"
	"gatekeeper_backend/internals/helpers/assets"
)

// PeopleAdminRoutes registers the registry CRUD under the admin group.
func PeopleAdminRoutes(admin fiber.Router, db *gorm.DB, store *assets.Store) {
	pc := controller.NewPersonController(db, store)

	people := admin.Group("/people")
	people.Get("/", pc.GetPeople)
	people.Post("/", pc.CreatePerson)
	people.Get("/:id", pc.GetPerson)
	people.Put("/:id", pc.UpdatePerson)
	people.Delete("/:id", pc.DeletePerson)
	people.Patch("/:id/status/:status", pc.ChangeStatus)

	admin.Get("/stats", pc.GetStats)
}
