package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gatekeeper_backend/internals/configs"
	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/admin/model"
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
	require.NoError(t, db.AutoMigrate(&model.AdminUserModel{}))
	return db
}

func TestSeedDefaultAdmin(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedDefaultAdmin(db))

	var admin model.AdminUserModel
	require.NoError(t, db.First(&admin, "username = ?", "admin").Error)
	assert.Equal(t, constants.RoleSuperAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, admin.CheckPassword("admin123"))
	assert.False(t, admin.CheckPassword("wrong"))

	// Re-seeding must not create a second account.
	require.NoError(t, SeedDefaultAdmin(db))
	var total int64
	require.NoError(t, db.Model(&model.AdminUserModel{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestGenerateAccessToken(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	db := openTestDB(t)
	require.NoError(t, SeedDefaultAdmin(db))
	var admin model.AdminUserModel
	require.NoError(t, db.First(&admin, "username = ?", "admin").Error)

	tokenStr, err := GenerateAccessToken(&admin)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, admin.ID.String(), claims["sub"])
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, constants.RoleSuperAdmin, claims["role"])
}

func TestGenerateAccessTokenRequiresSecret(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = ""
	t.Cleanup(func() { configs.JWTSecret = prev })

	_, err := GenerateAccessToken(&model.AdminUserModel{})
	require.Error(t, err)
}
