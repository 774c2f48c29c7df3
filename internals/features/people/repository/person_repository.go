package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/people/dto"
	"gatekeeper_backend/internals/features/people/model"
)

// ErrDuplicateBadge is returned when an insert/update would violate the badge
// code uniqueness constraint. No partial write happens in that case.
var ErrDuplicateBadge = errors.New("badge code already exists")

type PersonRepository struct {
	DB *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

// FindByBadge looks a person up by normalized badge code.
func (r *PersonRepository) FindByBadge(ctx context.Context, code string) (*model.PersonModel, error) {
	var p model.PersonModel
	err := r.DB.WithContext(ctx).
		Where("badge_code = ?", model.NormalizeBadgeCode(code)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id string) (*model.PersonModel, error) {
	var p model.PersonModel
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert creates the person. Duplicate badge codes surface as ErrDuplicateBadge,
// backed by the unique index so the race with a concurrent insert stays closed.
func (r *PersonRepository) Insert(ctx context.Context, p *model.PersonModel) error {
	p.BadgeCode = model.NormalizeBadgeCode(p.BadgeCode)
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateBadge
		}
		return err
	}
	return nil
}

func (r *PersonRepository) Update(ctx context.Context, p *model.PersonModel) error {
	p.BadgeCode = model.NormalizeBadgeCode(p.BadgeCode)
	if err := r.DB.WithContext(ctx).Save(p).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateBadge
		}
		return err
	}
	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, p *model.PersonModel) error {
	return r.DB.WithContext(ctx).Delete(p).Error
}

// List returns people ordered newest-first, optionally filtered by a search
// term over display name and badge code (case-insensitive).
func (r *PersonRepository) List(ctx context.Context, q string, offset, limit int) ([]model.PersonModel, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.PersonModel{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(display_name) LIKE ? OR LOWER(badge_code) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var people []model.PersonModel
	tx = tx.Order("created_at DESC")
	if limit > 0 {
		tx = tx.Offset(offset).Limit(limit)
	}
	if err := tx.Find(&people).Error; err != nil {
		return nil, 0, err
	}
	return people, total, nil
}

// AllBadgeCodes returns the set of badge codes currently in storage. The bulk
// importer seeds its duplicate check from this.
func (r *PersonRepository) AllBadgeCodes(ctx context.Context) (map[string]struct{}, error) {
	var codes []string
	if err := r.DB.WithContext(ctx).Model(&model.PersonModel{}).
		Pluck("badge_code", &codes).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set, nil
}

func (r *PersonRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.PersonModel{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

// NextSequenceNo returns one past the current maximum display ordinal.
func (r *PersonRepository) NextSequenceNo(ctx context.Context) (int, error) {
	var max int
	err := r.DB.WithContext(ctx).Model(&model.PersonModel{}).
		Select("COALESCE(MAX(sequence_no), 0)").Scan(&max).Error
	return max + 1, err
}

// Stats collects the dashboard counters.
func (r *PersonRepository) Stats(ctx context.Context) (*dto.RegistryStats, error) {
	s := &dto.RegistryStats{}
	db := r.DB.WithContext(ctx).Model(&model.PersonModel{})
	if err := db.Count(&s.TotalPeople).Error; err != nil {
		return nil, err
	}
	var err error
	if s.ActivePeople, err = r.CountByStatus(ctx, constants.StatusActive); err != nil {
		return nil, err
	}
	if s.InactivePeople, err = r.CountByStatus(ctx, constants.StatusInactive); err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&model.PersonModel{}).
		Where("checked_in = ?", true).Count(&s.CheckedIn).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// IsUniqueViolation matches unique constraint errors from Postgres (23505) and
// the sqlite driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}
