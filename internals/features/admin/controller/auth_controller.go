package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/admin/dto"
	"gatekeeper_backend/internals/features/admin/model"
	"gatekeeper_backend/internals/features/admin/service"
	"gatekeeper_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Please enter both username and password")
	}

	var admin model.AdminUserModel
	err := ac.DB.WithContext(c.UserContext()).
		Where("username = ?", req.Username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		log.Println("[ERROR] Login lookup failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Login failed")
	}

	if !admin.IsActive || !admin.CheckPassword(req.Password) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	token, err := service.GenerateAccessToken(&admin)
	if err != nil {
		log.Println("[ERROR] Token generation failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Login failed")
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := ac.DB.Model(&admin).Update("last_login_at", now).Error; err != nil {
		log.Println("[WARNING] Failed to record last login:", err)
	}

	log.Printf("[SUCCESS] Admin login: %s (%s)\n", admin.Username, admin.Role)
	return helper.Success(c, "Welcome back, "+admin.FirstName+"!", dto.LoginResponse{
		AccessToken: token,
		Admin: dto.AdminInfo{
			ID:        admin.ID.String(),
			Username:  admin.Username,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Role:      admin.Role,
		},
	})
}

// POST /api/a/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	adminID, _ := c.Locals("admin_id").(string)
	if adminID == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters long")
	}
	if req.NewPassword != req.ConfirmPassword {
		return helper.Error(c, fiber.StatusBadRequest, "New passwords do not match")
	}

	var admin model.AdminUserModel
	if err := ac.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !admin.CheckPassword(req.CurrentPassword) {
		return helper.Error(c, fiber.StatusBadRequest, "Current password is incorrect")
	}

	if err := admin.SetPassword(req.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to change password")
	}
	if err := ac.DB.Model(&admin).Update("password_hash", admin.PasswordHash).Error; err != nil {
		log.Println("[ERROR] Password update failed:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to change password")
	}

	return helper.Success(c, "Password changed successfully", nil)
}

// GET /api/a/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	adminID, _ := c.Locals("admin_id").(string)
	var admin model.AdminUserModel
	if err := ac.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Admin not found")
	}
	return helper.Success(c, "Profile fetched successfully", admin)
}
