package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/experiment"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. The base configuration comes from Config (a YAML
// file path) or Preset; the remaining fields override it when set.
type ScenarioStep struct {
	Preset      string              `yaml:"preset"`
	Config      string              `yaml:"config"`
	Scheme      string              `yaml:"scheme"`
	Dt          float64             `yaml:"dt"`
	Steps       int                 `yaml:"steps"`
	SubSteps    int                 `yaml:"sub_steps"`
	SampleEvery int                 `yaml:"sample_every"`
	Workers     int                 `yaml:"workers"`
	Bodies      []config.BodyConfig `yaml:"bodies"`
	SaveAs      string              `yaml:"save_as"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless the
// run was stored.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// Resolve builds the run configuration for the step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Scheme != "" {
		cfg.Scheme = s.Scheme
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.SubSteps != 0 {
		cfg.SubSteps = s.SubSteps
	}
	if s.SampleEvery != 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	cfg.Bodies = append(cfg.Bodies, s.Bodies...)
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps with save_as are written to
// st when it is non-nil. Progress goes to out. A step that stops on an
// invalid state is kept, and stored, with its partial result before the
// error is returned.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "Running step %d/%d: %s (%s)\n", i+1, len(scenario.Steps), cfg.Name, cfg.Scheme)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, runErr := exp.Run(ctx)
		if result == nil {
			return results, fmt.Errorf("step %d run: %w", i+1, runErr)
		}

		// a run stopped on an invalid state still keeps its partial trajectory
		sr := StepResult{Name: cfg.Name, Result: result}
		if step.SaveAs != "" && st != nil {
			sr.RunID, err = st.Save(Metadata(cfg, exp.System()), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
		if runErr != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, runErr)
		}
	}

	return results, nil
}

// Metadata describes a run of cfg on sys for storage.
func Metadata(cfg *config.Config, sys *dynamo.System) storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:        cfg.Name,
		Scheme:      cfg.Scheme,
		G:           cfg.G(),
		Dt:          cfg.Dt,
		Steps:       cfg.Steps,
		SubSteps:    cfg.SubSteps,
		SampleEvery: cfg.SampleEvery,
	}
	if sys != nil {
		meta.Host = sys.Host.Name
		meta.HostMass = sys.Host.Mass
		meta.HostPosition = sys.Host.Position.Clone()
	}
	return meta
}

// StepSweep reruns one configuration over a simulated span with a range of
// step sizes.
type StepSweep struct {
	Base     *config.Config
	Duration float64 // simulated seconds
	Dts      []float64
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	Dt      float64
	Steps   int
	Metrics map[string]float64
}

// RunSweep executes a step-size sweep
func RunSweep(ctx context.Context, sweep *StepSweep, registry *experiment.Registry, out io.Writer) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(sweep.Dts))

	for i, dt := range sweep.Dts {
		if dt <= 0 {
			return results, fmt.Errorf("sweep point %d: dt must be positive", i+1)
		}

		cfg := sweep.Base.Clone()
		cfg.Dt = dt
		cfg.Steps = max(1, int(sweep.Duration/dt))

		exp := experiment.New(cfg)
		if err := exp.Setup(registry); err != nil {
			return results, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{Dt: dt, Steps: cfg.Steps, Metrics: result.Metrics})
		fmt.Fprintf(out, "Sweep %d/%d: dt=%g\n", i+1, len(sweep.Dts), dt)
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Base *config.Config
	// Perturbation is the largest relative change applied to each
	// velocity component.
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one perturbed trial
type MonteCarloResult struct {
	TrialID int
	Bound   int // bodies still on closed orbits at the end
	Escaped int
	Stable  bool // no body escaped
}

// RunMonteCarlo executes multiple trials with random velocity perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry, out io.Writer) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		exp := experiment.New(cfg.Base.Clone())
		if err := exp.Setup(registry); err != nil {
			return nil, err
		}

		for _, b := range exp.System().Bodies {
			for i := range b.Velocity {
				b.Velocity[i] *= 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
			}
		}

		if _, err := exp.Run(ctx); err != nil {
			return nil, err
		}

		sys := exp.System()
		gm := cfg.Base.G() * sys.Host.Mass
		r := MonteCarloResult{TrialID: trial}
		for _, b := range sys.Bodies {
			if analysis.ElementsOf(gm, sys.Host, b).Bound() {
				r.Bound++
			} else {
				r.Escaped++
			}
		}
		r.Stable = r.Escaped == 0
		results = append(results, r)

		if (trial+1)%10 == 0 {
			fmt.Fprintf(out, "Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
