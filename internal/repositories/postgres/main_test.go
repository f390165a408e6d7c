package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.Subscription{},
		&models.Portfolio{},
		&models.Basics{},
		&models.Experience{},
		&models.Education{},
		&models.Skill{},
		&models.Project{},
		&models.Hackathon{},
		&models.Certification{},
		&models.Profile{},
		&models.Blog{},
		&models.Upload{},
	))
	return db
}
