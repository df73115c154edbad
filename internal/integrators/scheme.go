package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Scheme selects an integration method. The zero value is VelocityVerlet.
type Scheme int

const (
	VelocityVerlet Scheme = iota
	ExplicitEuler
)

func (s Scheme) String() string {
	switch s {
	case VelocityVerlet:
		return "verlet"
	case ExplicitEuler:
		return "euler"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme accepts the names printed by String, case-insensitively.
// An empty name selects the default.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "verlet", "velocity_verlet", "velocity-verlet":
		return VelocityVerlet, nil
	case "euler":
		return ExplicitEuler, nil
	default:
		return 0, &dynamo.ConfigurationError{Field: "scheme", Reason: fmt.Sprintf("unknown integrator %q", name)}
	}
}

// New returns a fresh integrator for s.
func New(s Scheme) (dynamo.Integrator, error) {
	switch s {
	case VelocityVerlet:
		return NewVerlet(), nil
	case ExplicitEuler:
		return NewEuler(), nil
	default:
		return nil, &dynamo.ConfigurationError{Field: "scheme", Reason: "unknown " + s.String()}
	}
}

// Schemes lists every supported scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{VelocityVerlet, ExplicitEuler}
}
