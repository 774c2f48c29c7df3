package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
)

// Validator instance
var validate = validator.New()

var badgeCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// PersonModel represents the people table. badge_code is the payload encoded in
// the person's QR credential and the natural key for access lookups; it is
// stored upper-cased and unique.
type PersonModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SequenceNo    int            `gorm:"column:sequence_no" json:"sequence_no"`
	BadgeCode     string         `gorm:"size:50;uniqueIndex:uq_people_badge_code;not null" json:"badge_code" validate:"required"`
	FirstName     string         `gorm:"size:100;not null" json:"first_name" validate:"required,max=100"`
	MiddleName    string         `gorm:"size:100" json:"middle_name,omitempty"`
	LastName      string         `gorm:"size:100;not null" json:"last_name" validate:"required,max=100"`
	DisplayName   string         `gorm:"size:255;not null" json:"display_name"`
	Status        string         `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	CheckedIn     bool           `gorm:"not null;default:false" json:"checked_in"`
	Role          string         `gorm:"size:100" json:"role,omitempty"`
	Company       string         `gorm:"size:150" json:"company,omitempty"`
	Address       string         `gorm:"type:text" json:"address,omitempty"`
	ContactNumber string         `gorm:"size:30" json:"contact_number,omitempty"`
	IDNumber      string         `gorm:"size:50" json:"id_number,omitempty"`
	RegisteredOn  datatypes.Date `gorm:"not null" json:"registered_on"`
	PictureRef    string         `gorm:"size:255" json:"picture_ref,omitempty"`
	QRImageRef    string         `gorm:"column:qr_image_ref;size:255" json:"qr_image_ref,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PersonModel) TableName() string {
	return "people"
}

func (p *PersonModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// NormalizeBadgeCode trims and upper-cases a raw badge payload. Every lookup
// and insert goes through this so scans are case-insensitive end to end.
func NormalizeBadgeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidBadgeCode reports whether a normalized code has an acceptable shape:
// at most 50 chars, alphanumerics plus hyphen and underscore.
func ValidBadgeCode(code string) bool {
	return badgeCodeRe.MatchString(code)
}

// ComposeDisplayName builds "First [Middle] Last" with single spacing.
func ComposeDisplayName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// SetDefaultValues normalizes derived fields before validation.
func (p *PersonModel) SetDefaultValues() {
	p.BadgeCode = NormalizeBadgeCode(p.BadgeCode)
	p.Status = constants.NormalizeStatus(p.Status)
	if p.DisplayName == "" {
		p.DisplayName = ComposeDisplayName(p.FirstName, p.MiddleName, p.LastName)
	}
	if time.Time(p.RegisteredOn).IsZero() {
		p.RegisteredOn = datatypes.Date(time.Now())
	}
}

// Validate checks the record against the schema rules.
func (p *PersonModel) Validate() error {
	p.SetDefaultValues()

	if !ValidBadgeCode(p.BadgeCode) {
		return errors.New("BadgeCode: must be at most 50 characters, alphanumerics, hyphen or underscore only.")
	}
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var b strings.Builder
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			b.WriteString(fieldErr.Field() + ": is required.\n")
		case "max":
			b.WriteString(fieldErr.Field() + ": must be at most " + fieldErr.Param() + " characters.\n")
		default:
			b.WriteString(fieldErr.Field() + ": invalid format.\n")
		}
	}
	return errors.New(b.String())
}
