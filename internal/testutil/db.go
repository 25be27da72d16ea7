// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-inventory/internal/config"
	"smart-inventory/pkg/database"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Name:   ":memory:",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
