package stage

import (
	"errors"
	"testing"

	"ai-analytics-be/internal/pkg/apperror"
)

func TestGateProgression(t *testing.T) {
	g := NewGate()

	if !g.IsUnlocked(Upload) {
		t.Fatal("upload must start unlocked")
	}
	for _, s := range []Stage{Clean, Query, Visualize, Report} {
		if g.IsUnlocked(s) {
			t.Errorf("stage %s unlocked before prerequisites", s)
		}
	}

	g.MarkComplete(Upload)
	if !g.IsUnlocked(Clean) {
		t.Error("clean should unlock after upload")
	}
	if g.IsUnlocked(Query) {
		t.Error("query requires clean too")
	}

	g.MarkComplete(Clean)
	g.MarkComplete(Query)
	g.MarkComplete(Visualize)
	if !g.IsUnlocked(Report) {
		t.Error("report should unlock after visualize")
	}
}

func TestGateRequireReturnsStageLocked(t *testing.T) {
	g := NewGate()

	err := g.Require(Query)
	if err == nil {
		t.Fatal("expected error for locked stage")
	}
	var locked *apperror.StageLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected StageLockedError, got %T", err)
	}
	if locked.Stage != string(Query) {
		t.Errorf("Stage = %q, want %q", locked.Stage, Query)
	}
}

func TestGateMarkCompleteIdempotent(t *testing.T) {
	g := NewGate()
	g.MarkComplete(Upload)
	g.MarkComplete(Upload)

	if !g.IsComplete(Upload) {
		t.Error("upload should be complete")
	}
	snap := g.Snapshot()
	done := 0
	for _, v := range snap {
		if v {
			done++
		}
	}
	if done != 1 {
		t.Errorf("completed stages = %d, want 1", done)
	}
}

func TestGateReset(t *testing.T) {
	g := NewGate()
	for _, s := range Order {
		g.MarkComplete(s)
	}
	g.Reset()

	for _, s := range Order {
		if g.IsComplete(s) {
			t.Errorf("stage %s still complete after reset", s)
		}
	}
	if !g.IsUnlocked(Upload) {
		t.Error("upload must be unlocked after reset")
	}
}
