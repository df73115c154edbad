package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Verlet is velocity Verlet: half kick, drift, half kick. It is second
// order and time reversible, and with a central force it conserves angular
// momentum to rounding, which is what keeps areal velocity constant.
type Verlet struct {
	scratch *dynamo.VectorPool
}

func NewVerlet() *Verlet {
	return &Verlet{scratch: dynamo.NewVectorPool()}
}

func (v *Verlet) Step(f dynamo.ForceModel, host *dynamo.Body, b *dynamo.Body, dt float64) {
	acc := v.scratch.Get(len(b.Position))
	defer v.scratch.Put(acc)

	halfDt := 0.5 * dt

	f.Acceleration(acc, host, b.Position)
	floats.AddScaled(b.Velocity, halfDt, acc)

	floats.AddScaled(b.Position, dt, b.Velocity)

	f.Acceleration(acc, host, b.Position)
	floats.AddScaled(b.Velocity, halfDt, acc)
}
