package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDBInitSeedsSampleData(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCmd(t, "db", "init", "--config", configPath)
	if err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Seeded 10 jobs, 12 candidates, 2 assessments") {
		t.Errorf("unexpected seed summary: %s", out)
	}
	if !strings.Contains(out, "initialized successfully") {
		t.Errorf("missing success line: %s", out)
	}
}

func TestDBSeedIsIdempotent(t *testing.T) {
	configPath := writeTestConfig(t)

	if out, err := runCmd(t, "db", "seed", "--config", configPath); err != nil {
		t.Fatalf("first seed failed: %v\n%s", err, out)
	}
	out, err := runCmd(t, "db", "seed", "--config", configPath)
	if err != nil {
		t.Fatalf("second seed failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "seed skipped") {
		t.Errorf("second seed should be skipped, got: %s", out)
	}
}

func TestDBResetRequiresConfirmation(t *testing.T) {
	configPath := writeTestConfig(t)

	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	// Stdin is not a terminal under go test, so reset without --yes
	// must refuse rather than hang on a prompt.
	if _, err := runCmd(t, "db", "reset", "--config", configPath); err == nil {
		t.Fatal("reset without --yes should fail outside a terminal")
	}
}

func TestDBResetWithYesReseeds(t *testing.T) {
	configPath := writeTestConfig(t)

	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "db", "reset", "--config", configPath, "--yes")
	if err != nil {
		t.Fatalf("db reset failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Seeded 10 jobs, 12 candidates, 2 assessments") {
		t.Errorf("reset should reseed, got: %s", out)
	}
}

func TestDBInitBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talentflow.yaml")
	if err := os.WriteFile(path, []byte("db:\n  driver: postgres\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runCmd(t, "db", "init", "--config", path); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
