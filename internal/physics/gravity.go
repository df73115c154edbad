package physics

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

const (
	// G is the Newtonian gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67430e-11

	// DegenerateEpsilon replaces a cubed separation of exactly zero. A body
	// sitting on the host then gets a finite (zero) acceleration instead of
	// NaN. This keeps animation loops alive; it has no physical meaning.
	DegenerateEpsilon = 1e-30
)

// Gravity is the single-host force model: only the host attracts, and
// bodies never attract each other or the host. A non-positive Epsilon
// falls back to DegenerateEpsilon.
type Gravity struct {
	G       float64
	Epsilon float64
}

func NewGravity() *Gravity {
	return &Gravity{G: G, Epsilon: DegenerateEpsilon}
}

// Acceleration writes -G*M*r/|r|^3 into dst, with r = pos - host.Position.
// It reads host and pos only and is safe to call concurrently.
func (g *Gravity) Acceleration(dst dynamo.Vector, host *dynamo.Body, pos dynamo.Vector) {
	floats.SubTo(dst, pos, host.Position)

	r := floats.Norm(dst, 2)
	r3 := r * r * r
	if r3 == 0 {
		r3 = g.Epsilon
		if !(r3 > 0) {
			r3 = DegenerateEpsilon
		}
	}

	floats.Scale(-g.G*host.Mass/r3, dst)
}

// GM returns the gravitational parameter of the host.
func (g *Gravity) GM(host *dynamo.Body) float64 {
	return g.G * host.Mass
}
