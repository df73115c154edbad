package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"verlet", "euler", "Velocity-Verlet", ""} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("GetIntegrator(%q): %v", name, err)
		}
	}
	if _, err := r.GetIntegrator("rk4"); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	if got := r.ListIntegrators(); len(got) != 2 || got[0] != "euler" {
		t.Errorf("ListIntegrators() = %v", got)
	}
	if got := r.DefaultMetrics(config.DefaultConfig()); len(got) != len(r.ListMetrics()) {
		t.Errorf("expected %d default metrics, got %d", len(r.ListMetrics()), len(got))
	}
	if _, err := r.GetMetric("nope", config.DefaultConfig()); err == nil {
		t.Error("expected unknown metric error")
	}
}

func TestExperimentRun(t *testing.T) {
	cfg := config.GetPreset("circular")
	cfg.Steps = 48

	e := New(cfg)
	if _, err := e.Run(context.Background()); err == nil {
		t.Fatal("expected error before setup")
	}
	if err := e.Setup(NewRegistry()); err != nil {
		t.Fatal(err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// initial sample plus every 24th step
	if res.Trajectory.Len() != 3 {
		t.Errorf("expected 3 samples, got %d", res.Trajectory.Len())
	}
	if _, ok := res.Metrics["energy_drift"]; !ok {
		t.Errorf("default metrics missing: %v", res.Metrics)
	}
	if e.System().Bodies[0].Position[1] == 0 {
		t.Error("system was not advanced")
	}
}

func TestExperimentStabilityUsesEscapeRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   float64
	}{
		{"default radius", 0, 1},
		{"radius inside the orbit", 1e11, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetPreset("circular")
			cfg.Steps = 48
			cfg.EscapeRadius = tt.radius

			e := New(cfg)
			if err := e.Setup(NewRegistry()); err != nil {
				t.Fatal(err)
			}
			res, err := e.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if got, ok := res.Metrics["stability"]; !ok || got != tt.want {
				t.Errorf("stability = %v (present %v), want %v", got, ok, tt.want)
			}
		})
	}
}

func TestExperimentCustomMetrics(t *testing.T) {
	cfg := config.GetPreset("circular")
	cfg.Steps = 10

	e := New(cfg)
	if err := e.Setup(NewRegistry(), metrics.NewRadiusDeviation()); err != nil {
		t.Fatal(err)
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Metrics) != 1 {
		t.Errorf("expected only radius_deviation, got %v", res.Metrics)
	}
}

func TestExperimentSetupErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scheme = "leapfrog"
	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Bodies = nil
	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestExperimentCanceled(t *testing.T) {
	e := New(config.DefaultConfig())
	if err := e.Setup(NewRegistry()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExperimentJobs(t *testing.T) {
	ens := sim.NewEnsemble(2)
	for _, scheme := range []string{"verlet", "euler"} {
		cfg := config.GetPreset("circular")
		cfg.Name = scheme
		cfg.Scheme = scheme
		cfg.Steps = 24

		e := New(cfg)
		if err := e.Setup(NewRegistry()); err != nil {
			t.Fatal(err)
		}
		ens.Add(e.Job())
	}

	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if results[1].Metrics["energy_drift"] <= results[0].Metrics["energy_drift"] {
		t.Errorf("euler should drift more than verlet: %v vs %v", results[1].Metrics, results[0].Metrics)
	}
}
