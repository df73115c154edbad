package sim

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
)

type Config struct {
	Dt          float64
	TotalSteps  int
	SubSteps    int // integrator calls per step, 0 means 1
	SampleEvery int // steps between trajectory samples, 0 means 1

	// IncludeInitial records the state before the first step as sample zero.
	IncludeInitial bool
	// ValidateState stops the run when a body state turns non-finite.
	ValidateState bool
	// Workers > 1 steps bodies concurrently within each step.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Dt:            3600,
		TotalSteps:    24 * 365,
		SubSteps:      1,
		SampleEvery:   1,
		ValidateState: true,
	}
}

func (c Config) subSteps() int {
	if c.SubSteps == 0 {
		return 1
	}
	return c.SubSteps
}

func (c Config) sampleEvery() int {
	if c.SampleEvery == 0 {
		return 1
	}
	return c.SampleEvery
}

func (c Config) validate() error {
	if !(c.Dt > 0) {
		return &dynamo.ConfigurationError{Field: "dt", Reason: "must be positive"}
	}
	if c.TotalSteps < 1 {
		return &dynamo.ConfigurationError{Field: "total_steps", Reason: "must be at least 1"}
	}
	if c.SubSteps < 0 {
		return &dynamo.ConfigurationError{Field: "sub_steps", Reason: "must be at least 1"}
	}
	if c.SampleEvery < 0 {
		return &dynamo.ConfigurationError{Field: "sample_every", Reason: "must be at least 1"}
	}
	return nil
}

// Trajectory is the sampled position history of every body, index aligned
// with System.Bodies.
type Trajectory struct {
	Names     []string
	Dim       int
	Times     []float64
	Positions [][]dynamo.Vector
}

func NewTrajectory(names []string, dim, capacity int) *Trajectory {
	tr := &Trajectory{
		Names:     append([]string(nil), names...),
		Dim:       dim,
		Times:     make([]float64, 0, capacity),
		Positions: make([][]dynamo.Vector, len(names)),
	}
	for i := range tr.Positions {
		tr.Positions[i] = make([]dynamo.Vector, 0, capacity)
	}
	return tr
}

// Record appends a copy of every body's current position.
func (tr *Trajectory) Record(s *dynamo.System, t float64) {
	tr.Times = append(tr.Times, t)
	for i, b := range s.Bodies {
		tr.Positions[i] = append(tr.Positions[i], b.Position.Clone())
	}
}

// Len is the number of samples.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// Index returns the body index for name, or -1.
func (tr *Trajectory) Index(name string) int {
	for i, n := range tr.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Path returns the samples of body i.
func (tr *Trajectory) Path(i int) []dynamo.Vector {
	return tr.Positions[i]
}

type Result struct {
	Trajectory *Trajectory
	Metrics    map[string]float64
	StepsTaken int
}
