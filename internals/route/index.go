// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/configs"
	accessRoute "gatekeeper_backend/internals/features/access/route"
	activityRoute "gatekeeper_backend/internals/features/activity/route"
	adminRoute "gatekeeper_backend/internals/features/admin/route"
	importsRoute "gatekeeper_backend/internals/features/imports/route"
	peopleRoute "gatekeeper_backend/internals/features/people/route"
	"gatekeeper_backend/internals/helpers/assets"
	authMW "gatekeeper_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	store, err := assets.NewStore(configs.AssetDir)
	if err != nil {
		log.Fatalf("❌ Asset store init failed: %v", err)
	}

	BaseRoutes(app, db)

	// Served QR codes and pictures
	app.Static("/static", configs.AssetDir)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	adminRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up AccessRoutes...")
	accessRoute.AccessRoutes(app, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (JWT)...")
	admin := app.Group("/api/a", authMW.AuthMiddleware())

	peopleRoute.PeopleAdminRoutes(admin, db, store)
	activityRoute.ActivityAdminRoutes(admin, db)
	importsRoute.ImportAdminRoutes(admin, db, store)
	adminRoute.AdminAccountRoutes(admin, db)
}
