package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gatekeeper_backend/internals/constants"
	activityModel "gatekeeper_backend/internals/features/activity/model"
	personModel "gatekeeper_backend/internals/features/people/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&personModel.PersonModel{}, &activityModel.ActivityEventModel{}))
	return db
}

func seedPerson(t *testing.T, db *gorm.DB, badge, status string) *personModel.PersonModel {
	t.Helper()
	p := &personModel.PersonModel{
		BadgeCode:   badge,
		FirstName:   "Jane",
		LastName:    "Doe",
		DisplayName: "Jane Doe",
		Status:      status,
	}
	require.NoError(t, p.Validate())
	require.NoError(t, db.Create(p).Error)
	return p
}

func countEvents(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&activityModel.ActivityEventModel{}).
		Where("action = ?", action).Count(&n).Error)
	return n
}

func TestEvaluateToggleAlternation(t *testing.T) {
	db := openTestDB(t)
	seedPerson(t, db, "ABC123", constants.StatusActive)
	ev := NewEvaluator(db)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		granted, _, person, err := ev.Evaluate(ctx, "ABC123", constants.MethodQR, "")
		require.NoError(t, err)
		assert.True(t, granted)
		// odd scans check in, even scans check out
		assert.Equal(t, i%2 == 1, person.CheckedIn, "scan %d", i)
	}

	assert.EqualValues(t, 3, countEvents(t, db, constants.ActionCheckIn))
	assert.EqualValues(t, 3, countEvents(t, db, constants.ActionCheckOut))
}

func TestEvaluateCaseInsensitiveBadge(t *testing.T) {
	db := openTestDB(t)
	seedPerson(t, db, "ABC123", constants.StatusActive)
	ev := NewEvaluator(db)
	ctx := context.Background()

	granted, msg, person, err := ev.Evaluate(ctx, "abc123", constants.MethodQR, "")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, "Access Granted: Check In successful for Jane Doe", msg)
	assert.True(t, person.CheckedIn)

	granted, msg, person, err = ev.Evaluate(ctx, "ABC123", constants.MethodQR, "")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, "Access Granted: Check Out successful for Jane Doe", msg)
	assert.False(t, person.CheckedIn)
}

func TestEvaluateInactiveNeverToggles(t *testing.T) {
	db := openTestDB(t)
	seeded := seedPerson(t, db, "BAD001", constants.StatusInactive)
	ev := NewEvaluator(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		granted, msg, person, err := ev.Evaluate(ctx, "BAD001", constants.MethodQR, "")
		require.NoError(t, err)
		assert.False(t, granted)
		assert.Equal(t, "Access Denied: User is Inactive", msg)
		require.NotNil(t, person)
		assert.False(t, person.CheckedIn)
	}

	var stored personModel.PersonModel
	require.NoError(t, db.First(&stored, "id = ?", seeded.ID).Error)
	assert.False(t, stored.CheckedIn)

	assert.EqualValues(t, 3, countEvents(t, db, constants.ActionAccessDenied))

	var events []activityModel.ActivityEventModel
	require.NoError(t, db.Find(&events, "action = ?", constants.ActionAccessDenied).Error)
	for _, e := range events {
		require.NotNil(t, e.PersonID)
		assert.Equal(t, seeded.ID, *e.PersonID)
		assert.Equal(t, "User status: Inactive", e.ReasonDetail)
	}
}

func TestEvaluateUnknownBadge(t *testing.T) {
	db := openTestDB(t)
	ev := NewEvaluator(db)

	granted, msg, person, err := ev.Evaluate(context.Background(), "NOPE42", constants.MethodQR, "")
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Nil(t, person)
	assert.Equal(t, "Access Denied: Invalid QR Code", msg)

	var events []activityModel.ActivityEventModel
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].PersonID)
	assert.Equal(t, constants.ActionAccessDenied, events[0].Action)
	assert.Equal(t, "User not found", events[0].ReasonDetail)
	assert.Equal(t, "NOPE42", events[0].BadgeCode)

	var people int64
	require.NoError(t, db.Model(&personModel.PersonModel{}).Count(&people).Error)
	assert.Zero(t, people)
}

func TestEvaluatePersistenceFaultLeavesStateUntouched(t *testing.T) {
	db := openTestDB(t)
	seeded := seedPerson(t, db, "ABC123", constants.StatusActive)
	ev := NewEvaluator(db)

	// Breaking the ledger table makes the toggle transaction fail after the
	// person update, forcing a rollback of the pair.
	require.NoError(t, db.Migrator().DropTable(&activityModel.ActivityEventModel{}))

	granted, msg, person, err := ev.Evaluate(context.Background(), "ABC123", constants.MethodQR, "")
	require.Error(t, err)
	assert.False(t, granted)
	assert.Equal(t, "System error", msg)
	require.NotNil(t, person)
	assert.False(t, person.CheckedIn)

	var stored personModel.PersonModel
	require.NoError(t, db.First(&stored, "id = ?", seeded.ID).Error)
	assert.False(t, stored.CheckedIn)
}

func TestEvaluateDeniedLedgerFaultSurfaces(t *testing.T) {
	db := openTestDB(t)
	seedPerson(t, db, "BAD001", constants.StatusInactive)
	ev := NewEvaluator(db)

	// A denial that cannot be recorded must not report a clean denial.
	require.NoError(t, db.Migrator().DropTable(&activityModel.ActivityEventModel{}))

	granted, msg, person, err := ev.Evaluate(context.Background(), "BAD001", constants.MethodQR, "")
	require.Error(t, err)
	assert.False(t, granted)
	assert.Equal(t, "System error", msg)
	require.NotNil(t, person)

	granted, msg, person, err = ev.Evaluate(context.Background(), "NOPE42", constants.MethodQR, "")
	require.Error(t, err)
	assert.False(t, granted)
	assert.Equal(t, "System error", msg)
	assert.Nil(t, person)
}

func TestEvaluateMethodDefaultsToQR(t *testing.T) {
	db := openTestDB(t)
	seedPerson(t, db, "ABC123", constants.StatusActive)
	ev := NewEvaluator(db)

	_, _, _, err := ev.Evaluate(context.Background(), " abc123 ", "", "")
	require.NoError(t, err)

	var event activityModel.ActivityEventModel
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, constants.MethodQR, event.Method)
	assert.Equal(t, "ABC123", event.BadgeCode)
	assert.Equal(t, "Success", event.ReasonDetail)
}
