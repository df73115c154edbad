package sim

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

// minParallelChunk keeps tiny systems on the calling goroutine.
const minParallelChunk = 64

type Simulator struct {
	force      dynamo.ForceModel
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(force dynamo.ForceModel, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		force:      force,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run is the default driver: velocity Verlet under Newtonian gravity,
// sampling every step.
func Run(sys *dynamo.System, dt float64, totalSteps int) (*Trajectory, error) {
	s := New(physics.NewGravity(), integrators.NewVerlet())
	res, err := s.Run(sys, Config{Dt: dt, TotalSteps: totalSteps, SampleEvery: 1})
	if res == nil {
		return nil, err
	}
	return res.Trajectory, err
}

// Run advances sys cfg.TotalSteps times, mutating its bodies in place, and
// returns the sampled trajectory. Preconditions are checked before the first
// step; a failing precondition returns a nil result. When state validation
// trips mid-run the partial result is returned alongside the error.
func (s *Simulator) Run(sys *dynamo.System, cfg Config) (*Result, error) {
	if err := s.precheck(sys, cfg); err != nil {
		return nil, err
	}

	k := cfg.subSteps()
	every := cfg.sampleEvery()
	h := cfg.Dt / float64(k)

	result := &Result{
		Trajectory: NewTrajectory(sys.Names(), sys.Dim, cfg.TotalSteps/every+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(sys, 0)
	}
	if cfg.IncludeInitial {
		result.Trajectory.Record(sys, 0)
	}

	for step := 1; step <= cfg.TotalSteps; step++ {
		s.advance(sys, h, k, cfg.Workers)
		t := float64(step) * cfg.Dt
		result.StepsTaken = step

		if cfg.ValidateState {
			if err := checkState(sys, step, t); err != nil {
				s.collect(result)
				return result, err
			}
		}

		for _, m := range s.metrics {
			m.Observe(sys, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(sys, step, t)
		}

		if step%every == 0 {
			result.Trajectory.Record(sys, t)
		}
	}

	s.collect(result)
	return result, nil
}

// Step advances sys by one externally observed step of dt, split into
// subSteps integrator calls. It is the per-frame counterpart of Run.
func (s *Simulator) Step(sys *dynamo.System, dt float64, subSteps int) error {
	cfg := Config{Dt: dt, TotalSteps: 1, SubSteps: subSteps}
	if err := s.precheck(sys, cfg); err != nil {
		return err
	}
	k := cfg.subSteps()
	s.advance(sys, dt/float64(k), k, 1)
	return nil
}

// RunWithCallback steps sys until cfg.TotalSteps is reached or fn returns
// false. fn sees the state after every step and must not mutate it.
func (s *Simulator) RunWithCallback(sys *dynamo.System, cfg Config, fn func(sys *dynamo.System, step int, t float64) bool) error {
	if err := s.precheck(sys, cfg); err != nil {
		return err
	}

	k := cfg.subSteps()
	h := cfg.Dt / float64(k)

	for step := 1; step <= cfg.TotalSteps; step++ {
		s.advance(sys, h, k, cfg.Workers)
		t := float64(step) * cfg.Dt

		if cfg.ValidateState {
			if err := checkState(sys, step, t); err != nil {
				return err
			}
		}
		if !fn(sys, step, t) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) precheck(sys *dynamo.System, cfg Config) error {
	if sys == nil {
		return &dynamo.ConfigurationError{Field: "system", Reason: "missing"}
	}
	if len(sys.Bodies) == 0 {
		return &dynamo.ConfigurationError{Field: "bodies", Reason: "empty"}
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	return sys.Validate()
}

func (s *Simulator) advance(sys *dynamo.System, h float64, k, workers int) {
	if workers > 1 {
		dynamo.ParallelFor(len(sys.Bodies), workers, minParallelChunk, func(start, end int) {
			for _, b := range sys.Bodies[start:end] {
				s.stepBody(sys.Host, b, h, k)
			}
		})
		return
	}

	for _, b := range sys.Bodies {
		s.stepBody(sys.Host, b, h, k)
	}
}

func (s *Simulator) stepBody(host, b *dynamo.Body, h float64, k int) {
	for j := 0; j < k; j++ {
		s.integrator.Step(s.force, host, b, h)
	}
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func checkState(sys *dynamo.System, step int, t float64) error {
	for _, b := range sys.Bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return &dynamo.SimulationError{Step: step, Time: t, Body: b.Name, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}
