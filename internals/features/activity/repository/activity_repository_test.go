package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/activity/model"
)

func newTestRepo(t *testing.T) *ActivityRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.ActivityEventModel{}))
	return NewActivityRepository(db)
}

func seedEvent(t *testing.T, repo *ActivityRepository, name, badge, action string, at time.Time) {
	t.Helper()
	ev := &model.ActivityEventModel{
		BadgeCode:  badge,
		PersonName: name,
		Action:     action,
		Method:     constants.MethodQR,
	}
	require.NoError(t, repo.Append(context.Background(), ev))
	// autoCreateTime stamps now; backdate for range assertions.
	require.NoError(t, repo.DB.Model(ev).Update("occurred_at", at).Error)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "Jane Doe", "ABC123", constants.ActionCheckIn, base)
	seedEvent(t, repo, "Jane Doe", "ABC123", constants.ActionCheckOut, base.Add(time.Hour))
	seedEvent(t, repo, "John Smith", "XYZ789", constants.ActionCheckIn, base.Add(2*time.Hour))

	events, err := repo.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "XYZ789", events[0].BadgeCode)
	assert.Equal(t, constants.ActionCheckOut, events[1].Action)
}

func TestSearchByText(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	seedEvent(t, repo, "Jane Doe", "ABC123", constants.ActionCheckIn, now)
	seedEvent(t, repo, "John Smith", "XYZ789", constants.ActionCheckIn, now)

	events, err := repo.Search(context.Background(), "jane", nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Jane Doe", events[0].PersonName)

	events, err = repo.Search(context.Background(), "xyz", nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "John Smith", events[0].PersonName)
}

func TestSearchDateRangeIsInclusive(t *testing.T) {
	repo := newTestRepo(t)

	seedEvent(t, repo, "Early", "E1", constants.ActionCheckIn,
		time.Date(2025, 1, 30, 23, 0, 0, 0, time.UTC))
	seedEvent(t, repo, "OnStart", "S1", constants.ActionCheckIn,
		time.Date(2025, 1, 31, 0, 30, 0, 0, time.UTC))
	seedEvent(t, repo, "LateSameDay", "L1", constants.ActionCheckIn,
		time.Date(2025, 1, 31, 23, 45, 0, 0, time.UTC))
	seedEvent(t, repo, "NextDay", "N1", constants.ActionCheckIn,
		time.Date(2025, 2, 1, 0, 15, 0, 0, time.UTC))

	day := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	events, err := repo.Search(context.Background(), "", &day, &day)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "LateSameDay", events[0].PersonName)
	assert.Equal(t, "OnStart", events[1].PersonName)
}
