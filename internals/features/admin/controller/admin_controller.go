package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/admin/dto"
	"gatekeeper_backend/internals/features/admin/model"
	"gatekeeper_backend/internals/helpers"
)

var validRoles = map[string]bool{
	constants.RoleSuperAdmin: true,
	constants.RoleAdmin:      true,
	constants.RoleGuard:      true,
}

// AdminController manages the admin accounts themselves. Super admin only.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GET /api/a/admins
func (ac *AdminController) ListAdmins(c *fiber.Ctx) error {
	var admins []model.AdminUserModel
	if err := ac.DB.WithContext(c.UserContext()).
		Order("created_at DESC").Find(&admins).Error; err != nil {
		log.Println("[ERROR] Failed to list admins:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve admins")
	}
	return helper.Success(c, "Admins fetched successfully", fiber.Map{
		"total":  len(admins),
		"admins": admins,
	})
}

// POST /api/a/admins
func (ac *AdminController) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Role == "" {
		req.Role = constants.RoleGuard
	}
	if !validRoles[req.Role] {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid role selected")
	}

	var existing model.AdminUserModel
	if err := ac.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return helper.Error(c, fiber.StatusConflict, "Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create admin")
	}

	admin := &model.AdminUserModel{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create admin")
	}
	if err := ac.DB.Create(admin).Error; err != nil {
		log.Println("[ERROR] Failed to create admin:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create admin")
	}

	log.Printf("[SUCCESS] Admin created: %s (%s)\n", admin.Username, admin.Role)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Admin created successfully", admin)
}

// PUT /api/a/admins/:id
func (ac *AdminController) UpdateAdmin(c *fiber.Ctx) error {
	admin, err := ac.findAdmin(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// The last super admin can be neither demoted nor deactivated.
	demoting := req.Role != "" && req.Role != constants.RoleSuperAdmin
	deactivating := req.IsActive != nil && !*req.IsActive
	if admin.Role == constants.RoleSuperAdmin && (demoting || deactivating) {
		if ac.superAdminCount() == 1 {
			return helper.Error(c, fiber.StatusBadRequest, "Cannot modify the only super admin account")
		}
	}

	if req.Email != "" {
		admin.Email = req.Email
	}
	if req.FirstName != "" {
		admin.FirstName = req.FirstName
	}
	if req.LastName != "" {
		admin.LastName = req.LastName
	}
	if req.Role != "" {
		if !validRoles[req.Role] {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid role selected")
		}
		admin.Role = req.Role
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}

	if err := ac.DB.Save(admin).Error; err != nil {
		log.Println("[ERROR] Failed to update admin:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update admin")
	}
	return helper.Success(c, "Admin updated successfully", admin)
}

// DELETE /api/a/admins/:id
func (ac *AdminController) DeleteAdmin(c *fiber.Ctx) error {
	admin, err := ac.findAdmin(c)
	if err != nil {
		return err
	}

	callerID, _ := c.Locals("admin_id").(string)
	if admin.ID.String() == callerID {
		return helper.Error(c, fiber.StatusBadRequest, "Cannot delete your own account")
	}
	if admin.Role == constants.RoleSuperAdmin && ac.superAdminCount() == 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Cannot delete the only super admin account")
	}

	if err := ac.DB.Delete(admin).Error; err != nil {
		log.Println("[ERROR] Failed to delete admin:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete admin")
	}

	log.Printf("[SUCCESS] Admin deleted: %s\n", admin.Username)
	return helper.Success(c, "Admin deleted successfully", nil)
}

// POST /api/a/admins/:id/reset-password
func (ac *AdminController) ResetPassword(c *fiber.Ctx) error {
	admin, err := ac.findAdmin(c)
	if err != nil {
		return err
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Password must be at least 6 characters long")
	}

	if err := admin.SetPassword(req.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reset password")
	}
	if err := ac.DB.Model(admin).Update("password_hash", admin.PasswordHash).Error; err != nil {
		log.Println("[ERROR] Failed to reset password:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reset password")
	}
	return helper.Success(c, "Password reset for "+admin.Username, nil)
}

func (ac *AdminController) findAdmin(c *fiber.Ctx) (*model.AdminUserModel, error) {
	var admin model.AdminUserModel
	if err := ac.DB.First(&admin, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Admin not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve admin")
	}
	return &admin, nil
}

func (ac *AdminController) superAdminCount() int64 {
	var n int64
	ac.DB.Model(&model.AdminUserModel{}).
		Where("role = ?", constants.RoleSuperAdmin).Count(&n)
	return n
}
