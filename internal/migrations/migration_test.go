package migrations

import (
	"testing"

	"clientboard/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestRunMigrations_CreatesSchemaAndSeedsOperator(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db, "test-secret"))

	for _, model := range []any{
		&models.User{}, &models.Client{}, &models.ClientTask{},
		&models.PublicApprovalLink{}, &models.ClientTaskHistoryEntry{}, &models.TaskTemplate{},
	} {
		assert.True(t, db.Migrator().HasTable(model))
	}

	var operator models.User
	require.NoError(t, db.Where("email = ?", defaultOperatorEmail).First(&operator).Error)
	assert.True(t, operator.IsActive)
	assert.NotEqual(t, defaultOperatorPassword, operator.PasswordHash,
		"the seeded password must be stored hashed")
}

func TestRunMigrations_SeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db, "test-secret"))
	require.NoError(t, RunMigrations(db, "test-secret"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", defaultOperatorEmail).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
