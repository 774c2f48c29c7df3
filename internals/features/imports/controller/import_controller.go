package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/imports/service"
	"gatekeeper_backend/internals/helpers"
	"gatekeeper_backend/internals/helpers/assets"
)

type ImportController struct {
	Importer *service.Importer
}

func NewImportController(db *gorm.DB, store *assets.Store) *ImportController {
	return &ImportController{Importer: service.NewImporter(db, store)}
}

// POST /api/a/imports/analyze, multipart field "file"
func (ic *ImportController) Analyze(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSV file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Could not read uploaded file")
	}
	defer f.Close()

	report, err := ic.Importer.Analyze(c.UserContext(), f)
	if err != nil {
		log.Println("[WARNING] Import analyze rejected:", err)
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.Success(c, "CSV analyzed successfully", report)
}

// POST /api/a/imports/commit, multipart field "file"
func (ic *ImportController) Commit(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSV file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Could not read uploaded file")
	}
	defer f.Close()

	result := ic.Importer.Commit(c.UserContext(), f)
	if !result.Success {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, result.Message, result)
	}
	return helper.Success(c, result.Message, result)
}
