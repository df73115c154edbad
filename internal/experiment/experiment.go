package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Experiment binds a run configuration to a ready simulator and the system
// it will mutate.
type Experiment struct {
	cfg       *config.Config
	system    *dynamo.System
	simulator *sim.Simulator
	integ     dynamo.Integrator
	metrics   []dynamo.Metric
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the system and simulator. The registry's default metrics are
// attached when metrics is empty.
func (e *Experiment) Setup(r *Registry, metrics ...dynamo.Metric) error {
	sys, err := e.cfg.Build()
	if err != nil {
		return err
	}
	integ, err := r.GetIntegrator(e.cfg.Scheme)
	if err != nil {
		return err
	}
	if len(metrics) == 0 {
		metrics = r.DefaultMetrics(e.cfg)
	}

	e.system = sys
	e.integ = integ
	e.metrics = metrics
	e.simulator = sim.New(e.cfg.Force(), integ)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.simulator.Run(e.system, e.cfg.SimConfig())
}

// Job packages the experiment for a sim.Ensemble. Setup must have run.
func (e *Experiment) Job() sim.Job {
	return sim.Job{
		Name:       e.cfg.Name,
		System:     e.system,
		Force:      e.cfg.Force(),
		Integrator: e.integ,
		Metrics:    e.metrics,
		Config:     e.cfg.SimConfig(),
	}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// System is the live system; it holds the final state after Run.
func (e *Experiment) System() *dynamo.System { return e.system }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
