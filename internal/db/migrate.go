package db

import (
	"fmt"

	"github.com/zulandar/talentflow/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model in the record store schema.
func AllModels() []interface{} {
	return []interface{}{
		&models.Job{},
		&models.Candidate{},
		&models.CandidateTimelineEvent{},
		&models.Assessment{},
		&models.AssessmentResponse{},
		&models.Note{},
	}
}

// AutoMigrate creates or updates all record-store tables and their
// secondary indexes.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// ClearAll deletes every row from every table. This is the reset
// utility's primitive; nothing else hard-deletes en masse.
func ClearAll(gdb *gorm.DB) error {
	for _, m := range AllModels() {
		if err := gdb.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("db: clear %T: %w", m, err)
		}
	}
	return nil
}
