package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	sunMass = 1.989e30
	au      = 1.496e11
)

func solarSystem(n int) *dynamo.System {
	host := dynamo.NewBody("sun", sunMass, dynamo.Vector{0, 0}, dynamo.Vector{0, 0})
	gm := physics.G * sunMass
	bodies := make([]*dynamo.Body, n)
	for i := range bodies {
		r := au * (0.5 + 0.25*float64(i))
		pos := dynamo.Vector{r, 0}
		bodies[i] = dynamo.NewBody("p"+string(rune('a'+i%26)), 1e24, pos, physics.OrbitalInsert(gm, pos))
	}
	return dynamo.NewSystem(2, host, bodies...)
}

func newSimulator() *Simulator {
	return New(physics.NewGravity(), integrators.NewVerlet())
}

func TestSimulatorRun(t *testing.T) {
	sys := solarSystem(2)
	res, err := newSimulator().Run(sys, Config{Dt: 3600, TotalSteps: 100})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	tr := res.Trajectory
	if tr.Len() != 100 {
		t.Errorf("expected 100 samples, got %d", tr.Len())
	}
	if len(tr.Positions) != 2 || len(tr.Positions[1]) != 100 {
		t.Errorf("trajectory not aligned with bodies: %d paths", len(tr.Positions))
	}
	if res.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", res.StepsTaken)
	}
	if tr.Times[99] != 100*3600 {
		t.Errorf("last sample time = %v", tr.Times[99])
	}

	last := tr.Positions[0][99]
	if last[0] != sys.Bodies[0].Position[0] || last[1] != sys.Bodies[0].Position[1] {
		t.Error("final sample does not match final body state")
	}
	if sys.Host.Position[0] != 0 || sys.Host.Position[1] != 0 {
		t.Error("host moved")
	}
}

func TestSimulatorSampling(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		samples int
	}{
		{"every step", Config{Dt: 60, TotalSteps: 10}, 10},
		{"every third", Config{Dt: 60, TotalSteps: 10, SampleEvery: 3}, 3},
		{"with initial", Config{Dt: 60, TotalSteps: 10, SampleEvery: 5, IncludeInitial: true}, 3},
		{"sparser than run", Config{Dt: 60, TotalSteps: 4, SampleEvery: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newSimulator().Run(solarSystem(1), tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if res.Trajectory.Len() != tt.samples {
				t.Errorf("expected %d samples, got %d", tt.samples, res.Trajectory.Len())
			}
		})
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		sys    func() *dynamo.System
		cfg    Config
		target error
	}{
		{"zero dt", func() *dynamo.System { return solarSystem(1) }, Config{Dt: 0, TotalSteps: 10}, dynamo.ErrConfiguration},
		{"negative dt", func() *dynamo.System { return solarSystem(1) }, Config{Dt: -1, TotalSteps: 10}, dynamo.ErrConfiguration},
		{"NaN dt", func() *dynamo.System { return solarSystem(1) }, Config{Dt: math.NaN(), TotalSteps: 10}, dynamo.ErrConfiguration},
		{"zero steps", func() *dynamo.System { return solarSystem(1) }, Config{Dt: 1, TotalSteps: 0}, dynamo.ErrConfiguration},
		{"negative sub steps", func() *dynamo.System { return solarSystem(1) }, Config{Dt: 1, TotalSteps: 1, SubSteps: -2}, dynamo.ErrConfiguration},
		{"negative sample every", func() *dynamo.System { return solarSystem(1) }, Config{Dt: 1, TotalSteps: 1, SampleEvery: -1}, dynamo.ErrConfiguration},
		{"empty bodies", func() *dynamo.System { return solarSystem(0) }, Config{Dt: 1, TotalSteps: 1}, dynamo.ErrConfiguration},
		{"nil system", func() *dynamo.System { return nil }, Config{Dt: 1, TotalSteps: 1}, dynamo.ErrConfiguration},
		{"dimension mismatch", func() *dynamo.System {
			s := solarSystem(2)
			s.Bodies[1].Position = dynamo.Vector{1, 2, 3}
			return s
		}, Config{Dt: 1, TotalSteps: 1}, dynamo.ErrConfiguration},
		{"negative mass", func() *dynamo.System {
			s := solarSystem(2)
			s.Bodies[1].Mass = -1
			return s
		}, Config{Dt: 1, TotalSteps: 1}, dynamo.ErrValidation},
		{"zero host mass", func() *dynamo.System {
			s := solarSystem(1)
			s.Host.Mass = 0
			return s
		}, Config{Dt: 1, TotalSteps: 1}, dynamo.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := tt.sys()
			var before dynamo.Vector
			if sys != nil && len(sys.Bodies) > 0 {
				before = sys.Bodies[0].Position.Clone()
			}

			res, err := newSimulator().Run(sys, tt.cfg)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if res != nil {
				t.Error("expected nil result on precondition failure")
			}
			if before != nil && sys.Bodies[0].Position[0] != before[0] {
				t.Error("state mutated before precondition failure")
			}
		})
	}
}

func TestSimulatorSubSteps(t *testing.T) {
	coarse := solarSystem(1)
	fine := coarse.Clone()
	reference := coarse.Clone()

	if _, err := newSimulator().Run(coarse, Config{Dt: 86400, TotalSteps: 100}); err != nil {
		t.Fatal(err)
	}
	res, err := newSimulator().Run(fine, Config{Dt: 86400, TotalSteps: 100, SubSteps: 24})
	if err != nil {
		t.Fatal(err)
	}
	if res.Trajectory.Len() != 100 {
		t.Errorf("sub-stepping changed the sample count: %d", res.Trajectory.Len())
	}
	if _, err := newSimulator().Run(reference, Config{Dt: 3600, TotalSteps: 2400}); err != nil {
		t.Fatal(err)
	}

	// 24 sub-steps of an hour are the same arithmetic as 24 hourly steps
	for i := range reference.Bodies[0].Position {
		if fine.Bodies[0].Position[i] != reference.Bodies[0].Position[i] {
			t.Fatalf("sub-stepped state differs from hourly stepping: %v vs %v",
				fine.Bodies[0].Position, reference.Bodies[0].Position)
		}
	}
	if coarse.Bodies[0].Position[0] == fine.Bodies[0].Position[0] {
		t.Error("expected daily stepping to differ from sub-stepped result")
	}
}

func TestSimulatorParallelMatchesSequential(t *testing.T) {
	seq := solarSystem(300)
	par := seq.Clone()

	cfg := Config{Dt: 3600, TotalSteps: 50, SampleEvery: 10}
	a, err := newSimulator().Run(seq, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 4
	b, err := newSimulator().Run(par, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Trajectory.Positions {
		for j := range a.Trajectory.Positions[i] {
			p, q := a.Trajectory.Positions[i][j], b.Trajectory.Positions[i][j]
			if p[0] != q[0] || p[1] != q[1] {
				t.Fatalf("body %d sample %d differs: %v vs %v", i, j, p, q)
			}
		}
	}
}

type countingObserver struct{ steps []int }

func (c *countingObserver) OnStep(s *dynamo.System, step int, t float64) {
	c.steps = append(c.steps, step)
}

type meanRadius struct {
	sum   float64
	count int
}

func (m *meanRadius) Name() string { return "mean_radius" }
func (m *meanRadius) Observe(s *dynamo.System, t float64) {
	m.sum += physics.Distance(s.Host, s.Bodies[0])
	m.count++
}
func (m *meanRadius) Value() float64 { return m.sum / float64(m.count) }
func (m *meanRadius) Reset()         { m.sum, m.count = 0, 0 }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := newSimulator()
	obs := &countingObserver{}
	metric := &meanRadius{}
	s.AddObserver(obs)
	s.AddMetric(metric)

	res, err := s.Run(solarSystem(1), Config{Dt: 3600, TotalSteps: 10})
	if err != nil {
		t.Fatal(err)
	}

	if len(obs.steps) != 10 || obs.steps[0] != 1 || obs.steps[9] != 10 {
		t.Errorf("unexpected observer steps: %v", obs.steps)
	}
	if metric.count != 11 {
		t.Errorf("expected 11 observations including the initial state, got %d", metric.count)
	}
	if r := res.Metrics["mean_radius"]; math.Abs(r-0.5*au)/au > 1e-3 {
		t.Errorf("mean radius = %g", r)
	}
}

type exploding struct{ after int }

func (e *exploding) Step(f dynamo.ForceModel, host *dynamo.Body, b *dynamo.Body, dt float64) {
	e.after--
	if e.after < 0 {
		b.Position[0] = math.Inf(1)
		return
	}
	b.Position[0] += dt
}

func TestSimulatorPartialResultOnInvalidState(t *testing.T) {
	s := New(physics.NewGravity(), &exploding{after: 5})
	res, err := s.Run(solarSystem(1), Config{Dt: 1, TotalSteps: 20, ValidateState: true})

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) || !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected simulation error, got %v", err)
	}
	if simErr.Step != 6 {
		t.Errorf("failed at step %d, want 6", simErr.Step)
	}
	if res == nil || res.Trajectory.Len() != 5 {
		t.Fatalf("expected 5 recorded samples in the partial result, got %+v", res)
	}
}

func TestSimulatorStep(t *testing.T) {
	a := solarSystem(1)
	b := a.Clone()

	s := newSimulator()
	for i := 0; i < 10; i++ {
		if err := s.Step(a, 3600, 4); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := newSimulator().Run(b, Config{Dt: 3600, TotalSteps: 10, SubSteps: 4}); err != nil {
		t.Fatal(err)
	}

	if a.Bodies[0].Position[0] != b.Bodies[0].Position[0] || a.Bodies[0].Velocity[1] != b.Bodies[0].Velocity[1] {
		t.Error("per-frame stepping diverged from batch run")
	}
	if err := s.Step(a, 0, 1); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestSimulatorRunWithCallback(t *testing.T) {
	calls := 0
	err := newSimulator().RunWithCallback(solarSystem(1), Config{Dt: 60, TotalSteps: 100}, func(s *dynamo.System, step int, t float64) bool {
		calls++
		return step < 7
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 7 {
		t.Errorf("expected callback to stop after 7 calls, got %d", calls)
	}
}

func TestRunDefault(t *testing.T) {
	tr, err := Run(solarSystem(3), 3600, 24)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 24 || len(tr.Names) != 3 || tr.Index("pb") != 1 {
		t.Errorf("unexpected trajectory: len=%d names=%v", tr.Len(), tr.Names)
	}

	if _, err := Run(solarSystem(0), 3600, 24); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestEnsemble(t *testing.T) {
	base := solarSystem(2)
	e := NewEnsemble(2)
	for _, scheme := range integrators.Schemes() {
		integ, _ := integrators.New(scheme)
		e.Add(Job{
			Name:       scheme.String(),
			System:     base.Clone(),
			Force:      physics.NewGravity(),
			Integrator: integ,
			Config:     Config{Dt: 3600, TotalSteps: 48},
		})
	}

	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Trajectory.Len() != 48 || results[1].Trajectory.Len() != 48 {
		t.Fatalf("unexpected results: %+v", results)
	}

	bad := NewEnsemble(0)
	bad.Add(Job{Name: "broken", System: solarSystem(1), Force: physics.NewGravity(), Integrator: integrators.NewVerlet(), Config: Config{Dt: 0, TotalSteps: 1}})
	if _, err := bad.Run(context.Background()); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected wrapped configuration error, got %v", err)
	}
}
