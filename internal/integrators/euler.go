package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Euler is the semi-implicit first-order update: v += a*dt, then x += v*dt,
// with a single force evaluation. Cheaper than Verlet, but energy and
// angular momentum drift over long horizons.
type Euler struct {
	scratch *dynamo.VectorPool
}

func NewEuler() *Euler {
	return &Euler{scratch: dynamo.NewVectorPool()}
}

func (e *Euler) Step(f dynamo.ForceModel, host *dynamo.Body, b *dynamo.Body, dt float64) {
	acc := e.scratch.Get(len(b.Position))
	defer e.scratch.Put(acc)

	f.Acceleration(acc, host, b.Position)
	floats.AddScaled(b.Velocity, dt, acc)
	floats.AddScaled(b.Position, dt, b.Velocity)
}
