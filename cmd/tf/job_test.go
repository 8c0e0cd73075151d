package main

import (
	"strings"
	"testing"
)

func TestJobList(t *testing.T) {
	configPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "job", "list", "--config", configPath)
	if err != nil {
		t.Fatalf("job list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "TITLE") {
		t.Errorf("missing header: %s", out)
	}
	if !strings.Contains(out, "(10 jobs total)") {
		t.Errorf("expected 10 seeded jobs, got: %s", out)
	}
}

func TestJobListStatusFilter(t *testing.T) {
	configPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "job", "list", "--config", configPath, "--status", "archived")
	if err != nil {
		t.Fatalf("job list failed: %v\n%s", err, out)
	}
	if strings.Contains(out, "\tactive\t") {
		t.Errorf("archived filter leaked active jobs: %s", out)
	}
}

func TestJobListUnknownSortKey(t *testing.T) {
	configPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	if _, err := runCmd(t, "job", "list", "--config", configPath, "--sort", "salary"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}
