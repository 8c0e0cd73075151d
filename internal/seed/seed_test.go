package seed

import (
	"testing"

	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return gdb
}

func TestSeed(t *testing.T) {
	gdb := openTestDB(t)

	res, err := Seed(gdb, Opts{Candidates: 50, Assessments: 3, Seed: 42})
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if res.Skipped {
		t.Fatal("seed skipped on empty store")
	}
	if res.Jobs == 0 || res.Candidates != 50 || res.Assessments != 3 {
		t.Errorf("Result = %+v, want jobs>0, 50 candidates, 3 assessments", res)
	}

	var jobCount int64
	if err := gdb.Model(&models.Job{}).Count(&jobCount).Error; err != nil {
		t.Fatalf("count jobs: %v", err)
	}
	if int(jobCount) != res.Jobs {
		t.Errorf("job rows = %d, want %d", jobCount, res.Jobs)
	}

	// Every candidate references a seeded job and carries a valid stage.
	var candidates []models.Candidate
	if err := gdb.Find(&candidates).Error; err != nil {
		t.Fatalf("load candidates: %v", err)
	}
	jobIDs := make(map[string]bool)
	var jobs []models.Job
	if err := gdb.Find(&jobs).Error; err != nil {
		t.Fatalf("load jobs: %v", err)
	}
	for _, j := range jobs {
		jobIDs[j.ID] = true
		if j.Slug == "" {
			t.Errorf("job %s has empty slug", j.ID)
		}
	}
	for _, c := range candidates {
		if !jobIDs[c.JobID] {
			t.Errorf("candidate %s references unknown job %s", c.ID, c.JobID)
		}
		if !models.ValidStage(c.Stage) {
			t.Errorf("candidate %s has invalid stage %q", c.ID, c.Stage)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	gdb := openTestDB(t)

	if _, err := Seed(gdb, Opts{Candidates: 10, Assessments: 1, Seed: 1}); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	res, err := Seed(gdb, Opts{Candidates: 10, Assessments: 1, Seed: 1})
	if err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	if !res.Skipped {
		t.Error("second seed did not skip a populated store")
	}

	var count int64
	if err := gdb.Model(&models.Candidate{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 10 {
		t.Errorf("candidate rows = %d, want 10 (no double seed)", count)
	}
}

func TestSeed_Deterministic(t *testing.T) {
	first := openTestDB(t)
	second := openTestDB(t)

	if _, err := Seed(first, Opts{Candidates: 20, Seed: 7}); err != nil {
		t.Fatalf("Seed(first) error: %v", err)
	}
	if _, err := Seed(second, Opts{Candidates: 20, Seed: 7}); err != nil {
		t.Fatalf("Seed(second) error: %v", err)
	}

	var a, b []models.Candidate
	if err := first.Order("id ASC").Find(&a).Error; err != nil {
		t.Fatalf("load first: %v", err)
	}
	if err := second.Order("id ASC").Find(&b).Error; err != nil {
		t.Fatalf("load second: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Stage != b[i].Stage || a[i].JobID != b[i].JobID {
			t.Errorf("candidate %d differs between identically seeded runs", i)
		}
	}
}

func TestReset_Reseeds(t *testing.T) {
	gdb := openTestDB(t)

	if _, err := Seed(gdb, Opts{Candidates: 5, Assessments: 1, Seed: 3}); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	// Mutate the store so reset visibly starts over.
	if err := gdb.Create(&models.Candidate{ID: "extra", Name: "Extra", Email: "extra@e.com", Stage: models.StageApplied}).Error; err != nil {
		t.Fatalf("insert extra: %v", err)
	}

	res, err := Reset(gdb, Opts{Candidates: 5, Assessments: 1, Seed: 3})
	if err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if res.Skipped {
		t.Error("reset skipped seeding")
	}

	var count int64
	if err := gdb.Model(&models.Candidate{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("candidate rows after reset = %d, want 5", count)
	}
	var extra models.Candidate
	if err := gdb.Where("id = ?", "extra").First(&extra).Error; err == nil {
		t.Error("reset kept a pre-existing row")
	}
}
