// Package digest periodically logs a snapshot of the hiring pipeline:
// per-stage candidate counts and job totals.
package digest

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/talentflow/internal/logging"
	"github.com/zulandar/talentflow/internal/models"
	"gorm.io/gorm"
)

// Stats is one pipeline snapshot.
type Stats struct {
	ActiveJobs   int64
	ArchivedJobs int64
	Candidates   int64
	ByStage      map[string]int64
}

// Snapshot computes the current pipeline stats.
func Snapshot(gdb *gorm.DB) (*Stats, error) {
	stats := &Stats{ByStage: make(map[string]int64)}

	if err := gdb.Model(&models.Job{}).Where("status = ?", models.JobStatusActive).
		Count(&stats.ActiveJobs).Error; err != nil {
		return nil, fmt.Errorf("digest: count active jobs: %w", err)
	}
	if err := gdb.Model(&models.Job{}).Where("status = ?", models.JobStatusArchived).
		Count(&stats.ArchivedJobs).Error; err != nil {
		return nil, fmt.Errorf("digest: count archived jobs: %w", err)
	}

	type row struct {
		Stage string
		Count int64
	}
	var rows []row
	if err := gdb.Model(&models.Candidate{}).
		Select("stage, count(*) as count").
		Group("stage").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("digest: count candidates by stage: %w", err)
	}
	for _, r := range rows {
		stats.ByStage[r.Stage] = r.Count
		stats.Candidates += r.Count
	}
	return stats, nil
}

// Start schedules the digest on the given cron spec and returns the
// running scheduler; callers stop it on shutdown.
func Start(gdb *gorm.DB, log *logging.Logger, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		stats, err := Snapshot(gdb)
		if err != nil {
			log.Error("pipeline digest failed", "err", err)
			return
		}
		log.Info("pipeline digest",
			"active_jobs", stats.ActiveJobs,
			"archived_jobs", stats.ArchivedJobs,
			"candidates", stats.Candidates,
			"applied", stats.ByStage[models.StageApplied],
			"screen", stats.ByStage[models.StageScreen],
			"tech", stats.ByStage[models.StageTech],
			"offer", stats.ByStage[models.StageOffer],
			"hired", stats.ByStage[models.StageHired],
			"rejected", stats.ByStage[models.StageRejected])
	})
	if err != nil {
		return nil, fmt.Errorf("digest: schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
