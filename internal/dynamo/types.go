package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxDim is the largest supported spatial dimensionality.
const MaxDim = 3

// Vector is a position, velocity or acceleration with 2 or 3 components.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// Body is a point mass. Position and Velocity are mutated in place by
// integrators; everything else is fixed for the lifetime of a run.
type Body struct {
	Name     string
	Mass     float64
	Position Vector
	Velocity Vector
}

// NewBody copies pos and vel so the caller's slices are never aliased.
func NewBody(name string, mass float64, pos, vel Vector) *Body {
	return &Body{
		Name:     name,
		Mass:     mass,
		Position: pos.Clone(),
		Velocity: vel.Clone(),
	}
}

func (b *Body) Dim() int { return len(b.Position) }

func (b *Body) Clone() *Body {
	return NewBody(b.Name, b.Mass, b.Position, b.Velocity)
}

// System couples every body to a single host. The host is never advanced.
type System struct {
	Host   *Body
	Bodies []*Body
	Dim    int
}

func NewSystem(dim int, host *Body, bodies ...*Body) *System {
	return &System{Host: host, Bodies: bodies, Dim: dim}
}

// Clone deep-copies the host and every body.
func (s *System) Clone() *System {
	c := &System{Dim: s.Dim, Bodies: make([]*Body, len(s.Bodies))}
	if s.Host != nil {
		c.Host = s.Host.Clone()
	}
	for i, b := range s.Bodies {
		c.Bodies[i] = b.Clone()
	}
	return c
}

// Index returns the position of the named body in Bodies, or -1.
func (s *System) Index(name string) int {
	for i, b := range s.Bodies {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Names lists body names in index order.
func (s *System) Names() []string {
	names := make([]string, len(s.Bodies))
	for i, b := range s.Bodies {
		names[i] = b.Name
	}
	return names
}

// Validate checks structure first and physical parameters second, so a
// malformed system reports a ConfigurationError even if masses are also bad.
func (s *System) Validate() error {
	if s.Dim != 2 && s.Dim != 3 {
		return &ConfigurationError{Field: "dim", Reason: "must be 2 or 3"}
	}
	if s.Host == nil {
		return &ConfigurationError{Field: "host", Reason: "missing"}
	}
	if len(s.Bodies) == 0 {
		return &ConfigurationError{Field: "bodies", Reason: "empty"}
	}
	if err := s.checkDim(s.Host); err != nil {
		return err
	}
	for i, b := range s.Bodies {
		if b == nil {
			return &ConfigurationError{Field: "bodies", Reason: "nil body", Index: i}
		}
		if err := s.checkDim(b); err != nil {
			return err
		}
	}

	if err := checkPhysical(s.Host); err != nil {
		return err
	}
	for _, b := range s.Bodies {
		if err := checkPhysical(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) checkDim(b *Body) error {
	if len(b.Position) != s.Dim {
		return &ConfigurationError{Field: "position", Body: b.Name, Reason: dimReason(len(b.Position), s.Dim)}
	}
	if len(b.Velocity) != s.Dim {
		return &ConfigurationError{Field: "velocity", Body: b.Name, Reason: dimReason(len(b.Velocity), s.Dim)}
	}
	return nil
}

func checkPhysical(b *Body) error {
	// written as a negation so NaN fails too
	if !(b.Mass > 0) {
		return &ValidationError{Body: b.Name, Field: "mass", Value: b.Mass, Reason: "must be positive"}
	}
	if !b.Position.IsValid() {
		return &ValidationError{Body: b.Name, Field: "position", Reason: "non-finite component"}
	}
	if !b.Velocity.IsValid() {
		return &ValidationError{Body: b.Name, Field: "velocity", Reason: "non-finite component"}
	}
	return nil
}

// ForceModel computes the acceleration of a body at pos due to host and
// writes it into dst, which has the same length as pos.
type ForceModel interface {
	Acceleration(dst Vector, host *Body, pos Vector)
}

// Integrator advances one body by dt in place.
type Integrator interface {
	Step(f ForceModel, host *Body, b *Body, dt float64)
}

type Metric interface {
	Name() string
	Observe(s *System, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *System, step int, t float64)
}
