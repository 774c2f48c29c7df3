package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/access/service"
	"gatekeeper_backend/internals/helpers"
)

type AccessController struct {
	Evaluator *service.Evaluator
}

func NewAccessController(db *gorm.DB) *AccessController {
	return &AccessController{Evaluator: service.NewEvaluator(db)}
}

type scanRequest struct {
	BadgeCode string `json:"badge_code" form:"badge_code"`
	Method    string `json:"method" form:"method"`
	Reason    string `json:"reason" form:"reason"`
}

// POST /api/access/scan is the kiosk endpoint. It stays unauthenticated
// because the scanner terminal has no operator session.
func (ac *AccessController) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.BadgeCode) == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Please enter a QR Code ID")
	}

	granted, message, person, err := ac.Evaluator.Evaluate(c.UserContext(), req.BadgeCode, req.Method, req.Reason)
	if err != nil {
		log.Println("[ERROR] Scan evaluation failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, message)
	}

	if granted {
		log.Printf("[SUCCESS] Access granted: %s\n", person.BadgeCode)
	} else {
		log.Printf("[WARNING] Access denied: %s - %s\n", req.BadgeCode, message)
	}

	return helper.Success(c, message, fiber.Map{
		"granted": granted,
		"person":  person,
	})
}
