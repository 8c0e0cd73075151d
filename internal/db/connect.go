// Package db provides record-store lifecycle operations: connecting,
// migrating, and clearing the TalentFlow tables.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open connects to the record store for the given driver. For sqlite,
// dsn is a file path (":memory:" for an in-memory store) and parent
// directories are created as needed. For mysql, dsn is a standard DSN.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch driver {
	case DriverSQLite:
		if dsn != ":memory:" {
			if dir := filepath.Dir(dsn); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("db: create dir for %s: %w", dsn, err)
				}
			}
		}
		gdb, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", dsn, err)
		}
		return gdb, nil
	case DriverMySQL:
		gdb, err := gorm.Open(mysql.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("db: open mysql: %w", err)
		}
		return gdb, nil
	default:
		return nil, fmt.Errorf("db: unknown driver %q", driver)
	}
}

// Close closes the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("db: get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("db: close: %w", err)
	}
	return nil
}
