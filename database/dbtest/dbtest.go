// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prodplan/database"
)

// New returns a migrated SQLite database under t.TempDir that is closed when the test ends.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "planner_test.db"), logger.Silent)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Errorf("closing test db: %v", err)
		}
	})
	return db
}
