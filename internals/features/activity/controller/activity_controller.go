package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/activity/repository"
	"gatekeeper_backend/internals/features/activity/service"
	"gatekeeper_backend/internals/helpers"
)

type ActivityController struct {
	Repo *repository.ActivityRepository
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{Repo: repository.NewActivityRepository(db)}
}

// GET /api/a/activity?query=&start_date=&end_date=&limit=
func (ac *ActivityController) SearchActivity(c *fiber.Ctx) error {
	start, end, warnings := parseDateFilters(c)

	events, err := ac.Repo.Search(c.UserContext(), c.Query("query"), start, end)
	if err != nil {
		log.Println("[ERROR] Activity search failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to search activity")
	}

	return helper.Success(c, "Activity fetched successfully", fiber.Map{
		"total":    len(events),
		"events":   events,
		"warnings": warnings,
	})
}

// GET /api/a/activity/recent?limit=10
func (ac *ActivityController) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	events, err := ac.Repo.Recent(c.UserContext(), limit)
	if err != nil {
		log.Println("[ERROR] Recent activity fetch failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch activity")
	}
	return helper.Success(c, "Recent activity fetched successfully", fiber.Map{
		"total":  len(events),
		"events": events,
	})
}

// GET /api/a/activity/export takes the same filters as search and answers text/csv
func (ac *ActivityController) ExportActivity(c *fiber.Ctx) error {
	start, end, _ := parseDateFilters(c)

	events, err := ac.Repo.Search(c.UserContext(), c.Query("query"), start, end)
	if err != nil {
		log.Println("[ERROR] Activity export failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to export activity")
	}

	csvData, err := service.ExportCSV(events)
	if err != nil {
		log.Println("[ERROR] CSV render failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to export activity")
	}

	filename := fmt.Sprintf("activity_report_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.SendString(csvData)
}

// parseDateFilters reads start_date/end_date (YYYY-MM-DD). Invalid values are
// reported as warnings and ignored rather than failing the request.
func parseDateFilters(c *fiber.Ctx) (start, end *time.Time, warnings []string) {
	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			start = &t
		} else {
			warnings = append(warnings, "Invalid start date format")
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			end = &t
		} else {
			warnings = append(warnings, "Invalid end date format")
		}
	}
	return start, end, warnings
}
