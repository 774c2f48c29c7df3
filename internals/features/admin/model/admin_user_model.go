package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUserModel represents the admin_users table: the operators who sign in
// to manage people and browse the ledger. Distinct from PersonModel, whose
// records never authenticate.
type AdminUserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:50;unique;not null" json:"username" validate:"required,min=3,max=50"`
	Email        string     `gorm:"size:255" json:"email,omitempty"`
	FirstName    string     `gorm:"size:100;not null" json:"first_name" validate:"required"`
	LastName     string     `gorm:"size:100;not null" json:"last_name" validate:"required"`
	Role         string     `gorm:"type:varchar(20);not null;default:'guard'" json:"role"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AdminUserModel) TableName() string {
	return "admin_users"
}

func (u *AdminUserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetPassword stores a bcrypt hash of the plaintext password.
func (u *AdminUserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *AdminUserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// CanAccessDashboard reports whether this admin may use the management UI;
// guards only get the scan surface.
func (u *AdminUserModel) CanAccessDashboard() bool {
	return u.Role == "super_admin" || u.Role == "admin"
}
