// Package testutil provides an in-memory database for handler tests.
package testutil

import (
	"testing"

	"github.com/KAMASDM/naishad/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupDB points database.DB at a fresh, migrated in-memory SQLite database.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}
