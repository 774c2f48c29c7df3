package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityEventModel is the append-only ledger of access and administrative
// events. Rows are never updated or deleted; badge_code and person_name are
// denormalized snapshots so events outlive the person they reference.
type ActivityEventModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PersonID     *uuid.UUID `gorm:"type:uuid" json:"person_id,omitempty"`
	BadgeCode    string     `gorm:"size:50;not null" json:"badge_code"`
	PersonName   string     `gorm:"size:255;not null" json:"person_name"`
	Action       string     `gorm:"type:varchar(20);not null" json:"action"`
	Method       string     `gorm:"type:varchar(30);not null;default:'QR'" json:"method"`
	ReasonDetail string     `gorm:"size:255" json:"reason_detail,omitempty"`
	OccurredAt   time.Time  `gorm:"autoCreateTime;index" json:"occurred_at"`
}

func (ActivityEventModel) TableName() string {
	return "activity_events"
}

func (ev *ActivityEventModel) BeforeCreate(tx *gorm.DB) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	return nil
}
