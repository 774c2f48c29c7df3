package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/admin/controller"
	"gatekeeper_backend/internals/middlewares"
	authMW "gatekeeper_backend/internals/middlewares/auth"
)

// AuthRoutes registers the public login endpoint.
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ac := controller.NewAuthController(db)
	app.Post("/api/login", middlewares.LoginRateLimiter(), ac.Login)
}

// AdminAccountRoutes registers profile/password endpoints plus the super-admin
// account management group.
func AdminAccountRoutes(admin fiber.Router, db *gorm.DB) {
	auth := controller.NewAuthController(db)
	admin.Get("/me", auth.Me)
	admin.Post("/change-password", auth.ChangePassword)

	mgr := controller.NewAdminController(db)
	admins := admin.Group("/admins", authMW.RequireRoles(constants.RoleSuperAdmin))
	admins.Get("/", mgr.ListAdmins)
	admins.Post("/", mgr.CreateAdmin)
	admins.Put("/:id", mgr.UpdateAdmin)
	admins.Delete("/:id", mgr.DeleteAdmin)
	admins.Post("/:id/reset-password", mgr.ResetPassword)
}
