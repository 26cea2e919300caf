// database/bootstrap.go
package database

import (
	"fmt"
	"log"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prodplan/entities"
)

// pragmas appended to every DSN; SQLite leaves foreign keys off by default.
const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenSQLite opens the database or exits the process.
func OpenSQLite(path, logLevel string) *gorm.DB {
	db, err := Open(path, ParseLogLevel(logLevel))
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	return db
}

// Open opens path and migrates every entity.
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&" + pragmas
	} else {
		dsn += "?" + pragmas
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.Employee{},
		&entities.Article{},
		&entities.MachineGroup{},
		&entities.PlanItem{},
		&entities.DefaultGoal{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Close releases the pooled connections behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
