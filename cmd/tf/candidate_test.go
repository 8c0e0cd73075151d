package main

import (
	"strings"
	"testing"
)

func TestCandidateList(t *testing.T) {
	configPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "candidate", "list", "--config", configPath)
	if err != nil {
		t.Fatalf("candidate list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "EMAIL") {
		t.Errorf("missing header: %s", out)
	}
	if !strings.Contains(out, "(12 candidates total)") {
		t.Errorf("expected 12 seeded candidates, got: %s", out)
	}
}

func TestCandidateListStageFilter(t *testing.T) {
	configPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "candidate", "list", "--config", configPath, "--stage", "hired")
	if err != nil {
		t.Fatalf("candidate list failed: %v\n%s", err, out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "@example.com") && !strings.Contains(line, "hired") {
			t.Errorf("stage filter leaked row: %s", line)
		}
	}
}

func TestCandidateTimelineUnknownID(t *testing.T) {
	configPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "--config", configPath); err != nil {
		t.Fatalf("db init failed: %v\n%s", err, out)
	}

	out, err := runCmd(t, "candidate", "timeline", "candidate-0-missing", "--config", configPath)
	if err != nil {
		t.Fatalf("timeline failed: %v\n%s", err, out)
	}
	// An unknown candidate simply has no history.
	if lines := strings.Count(strings.TrimSpace(out), "\n"); lines > 0 {
		t.Errorf("expected only the header, got: %s", out)
	}
}
