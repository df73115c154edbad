package analysis

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// Elements are the osculating two-body elements of a body about its host.
// For unbound orbits SemiMajorAxis is negative and Period, Apoapsis and
// SecondFocus are not meaningful (Period and Apoapsis are +Inf).
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Period        float64
	Periapsis     float64
	Apoapsis      float64
	Energy        float64
	// SecondFocus is the empty focus of the ellipse, the host being the other.
	SecondFocus dynamo.Vector
}

func (e Elements) Bound() bool { return e.Eccentricity < 1 && e.SemiMajorAxis > 0 }

// ElementsOf derives the elements of b from its current state.
func ElementsOf(gm float64, host, b *dynamo.Body) Elements {
	r := physics.ToR3(b.Position)
	r = r3.Sub(r, physics.ToR3(host.Position))
	v := physics.ToR3(b.Velocity)
	dist := r3.Norm(r)

	energy := physics.SpecificEnergy(gm, host, b)
	h := r3.Cross(r, v)

	// eccentricity vector points from the host to periapsis
	ev := r3.Sub(r3.Scale(1/gm, r3.Cross(v, h)), r3.Scale(1/dist, r))
	ecc := r3.Norm(ev)

	el := Elements{
		SemiMajorAxis: -gm / (2 * energy),
		Eccentricity:  ecc,
		Energy:        energy,
		SecondFocus:   make(dynamo.Vector, len(b.Position)),
	}
	el.Periapsis = el.SemiMajorAxis * (1 - ecc)

	if !el.Bound() {
		el.Period = math.Inf(1)
		el.Apoapsis = math.Inf(1)
		el.Periapsis = r3.Dot(h, h) / (gm * (1 + ecc))
		return el
	}

	el.Period = 2 * math.Pi * math.Sqrt(el.SemiMajorAxis*el.SemiMajorAxis*el.SemiMajorAxis/gm)
	el.Apoapsis = el.SemiMajorAxis * (1 + ecc)

	// the foci are 2ae apart along the major axis, away from periapsis
	focus := r3.Add(physics.ToR3(host.Position), r3.Scale(-2*el.SemiMajorAxis, ev))
	setVector(el.SecondFocus, focus)
	return el
}

func setVector(dst dynamo.Vector, v r3.Vec) {
	comps := [3]float64{v.X, v.Y, v.Z}
	copy(dst, comps[:len(dst)])
}
