package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"rift-collector/internal/config"
)

// TestPipeline_StageFailureDoesNotStopRun verifies a failing stage is logged
// and the later stages still execute.
func TestPipeline_StageFailureDoesNotStopRun(t *testing.T) {
	var order []string
	p := &Pipeline{
		logger: zerolog.Nop(),
		stages: []Stage{
			{Name: "first", Enabled: true, Run: func(context.Context) error {
				order = append(order, "first")
				return errors.New("boom")
			}},
			{Name: "second", Enabled: true, Run: func(context.Context) error {
				order = append(order, "second")
				return nil
			}},
		},
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("executed stages = %v, want both despite first failing", order)
	}
}

func TestPipeline_SkipsDisabledStages(t *testing.T) {
	var ran bool
	p := &Pipeline{
		logger: zerolog.Nop(),
		stages: []Stage{
			{Name: "off", Enabled: false, Run: func(context.Context) error {
				ran = true
				return nil
			}},
		},
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ran {
		t.Error("disabled stage ran")
	}
}

// TestPipeline_CancellationStopsRun verifies cancellation is the one error
// that aborts the remaining stages.
func TestPipeline_CancellationStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var secondRan bool
	p := &Pipeline{
		logger: zerolog.Nop(),
		stages: []Stage{
			{Name: "first", Enabled: true, Run: func(ctx context.Context) error {
				cancel()
				return ctx.Err()
			}},
			{Name: "second", Enabled: true, Run: func(context.Context) error {
				secondRan = true
				return nil
			}},
		},
	}

	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if secondRan {
		t.Error("stage ran after cancellation")
	}
}

// TestNewPipeline_StageOrder pins the stage sequence the store handoff
// depends on.
func TestNewPipeline_StageOrder(t *testing.T) {
	env := setupEnv(t)
	env.cfg.Stages = config.StageFlags{Roster: true, MatchIDs: true, MatchDetail: true, Timeline: true}

	p := NewPipeline(env.cfg, &fakeAPI{}, env.store, env.writer, zerolog.Nop())

	want := []string{"tier_roster", "match_ids", "match_detail", "timeline"}
	if len(p.stages) != len(want) {
		t.Fatalf("stage count = %d, want %d", len(p.stages), len(want))
	}
	for i, name := range want {
		if p.stages[i].Name != name {
			t.Errorf("stage %d = %q, want %q", i, p.stages[i].Name, name)
		}
		if !p.stages[i].Enabled {
			t.Errorf("stage %q disabled, want enabled", name)
		}
	}
}
