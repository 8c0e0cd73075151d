package models

import "testing"

func TestValidStage(t *testing.T) {
	for _, stage := range Stages {
		if !ValidStage(stage) {
			t.Errorf("ValidStage(%q) = false", stage)
		}
	}
	for _, bad := range []string{"", "Applied", "interview", "hired "} {
		if ValidStage(bad) {
			t.Errorf("ValidStage(%q) = true", bad)
		}
	}
}

func TestStageOrder(t *testing.T) {
	want := []string{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}
	if len(Stages) != len(want) {
		t.Fatalf("Stages has %d entries, want %d", len(Stages), len(want))
	}
	for i, stage := range want {
		if Stages[i] != stage {
			t.Errorf("Stages[%d] = %q, want %q", i, Stages[i], stage)
		}
	}
}
