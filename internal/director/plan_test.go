package director

import (
	"path/filepath"
	"testing"

	"github.com/ivlev/card2video/internal/config"
)

func TestPlanRoundTrip(t *testing.T) {
	tl := newTestTimeline(t, 2, func(c *config.Config) { c.TotalDuration = 30 })
	plan := NewPlan(tl, 12, []string{"first", "second"})

	if plan.Frames != 900 || plan.TailFrames != 180 {
		t.Fatalf("unexpected plan size: frames=%d tail=%d", plan.Frames, plan.TailFrames)
	}
	if len(plan.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(plan.Scenes))
	}
	if s := plan.Scenes[1]; s.Caption != "second" || s.Start != 360 || s.End != 720 {
		t.Errorf("unexpected second scene: %+v", s)
	}

	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := WritePlan(plan, path); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}
	got, err := ReadPlan(path)
	if err != nil {
		t.Fatalf("ReadPlan failed: %v", err)
	}
	if got.Episode != 12 || got.Scenes[0].HoldEnd != plan.Scenes[0].HoldEnd {
		t.Errorf("plan changed on disk: %+v", got)
	}
}

func TestReadPlanMissing(t *testing.T) {
	if _, err := ReadPlan(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing plan")
	}
}
