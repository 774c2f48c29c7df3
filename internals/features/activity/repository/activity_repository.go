package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"gatekeeper_backend/internals/features/activity/model"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Append writes one ledger event. This is the only write path the ledger has.
func (r *ActivityRepository) Append(ctx context.Context, ev *model.ActivityEventModel) error {
	return r.DB.WithContext(ctx).Create(ev).Error
}

// Recent returns the newest events, most recent first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]model.ActivityEventModel, error) {
	var events []model.ActivityEventModel
	tx := r.DB.WithContext(ctx).Order("occurred_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&events).Error
	return events, err
}

// Search filters the ledger by free text (person name or badge code,
// case-insensitive) and an inclusive date range. The end date is widened to
// its last instant so "2025-01-31" covers the whole day.
func (r *ActivityRepository) Search(ctx context.Context, text string, start, end *time.Time) ([]model.ActivityEventModel, error) {
	tx := r.DB.WithContext(ctx).Model(&model.ActivityEventModel{})

	if text = strings.TrimSpace(text); text != "" {
		like := "%" + strings.ToLower(text) + "%"
		tx = tx.Where("LOWER(person_name) LIKE ? OR LOWER(badge_code) LIKE ?", like, like)
	}
	if start != nil {
		dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		tx = tx.Where("occurred_at >= ?", dayStart)
	}
	if end != nil {
		dayEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())
		tx = tx.Where("occurred_at <= ?", dayEnd)
	}

	var events []model.ActivityEventModel
	err := tx.Order("occurred_at DESC").Find(&events).Error
	return events, err
}
