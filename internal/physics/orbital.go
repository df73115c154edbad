package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// CircularSpeed is the speed of a circular orbit of radius r around a host
// with gravitational parameter gm.
func CircularSpeed(gm, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(gm / r)
}

// PeriapsisSpeed is the speed at periapsis rp of an orbit with eccentricity e.
func PeriapsisSpeed(gm, rp, e float64) float64 {
	if rp <= 0 {
		return 0
	}
	return math.Sqrt(gm * (1 + e) / rp)
}

// OrbitalInsert returns the velocity for a counter-clockwise circular orbit
// at offset rel from the host. In 3D the orbit turns about the z axis, or
// about the x axis when rel lies on z.
func OrbitalInsert(gm float64, rel dynamo.Vector) dynamo.Vector {
	out := make(dynamo.Vector, len(rel))
	r := rel.Norm()
	if r == 0 {
		return out
	}

	speed := CircularSpeed(gm, r)
	switch len(rel) {
	case 2:
		out[0] = -rel[1] / r * speed
		out[1] = rel[0] / r * speed
	case 3:
		p := ToR3(rel)
		t := r3.Cross(r3.Vec{Z: 1}, p)
		if r3.Norm(t) == 0 {
			t = r3.Cross(r3.Vec{X: 1}, p)
		}
		t = r3.Scale(speed/r3.Norm(t), t)
		out[0], out[1], out[2] = t.X, t.Y, t.Z
	}
	return out
}

// SpecificEnergy is the orbital energy per unit mass of b relative to host:
// v^2/2 - GM/r. It is -Inf when b sits on the host.
func SpecificEnergy(gm float64, host, b *dynamo.Body) float64 {
	rel := make(dynamo.Vector, len(b.Position))
	floats.SubTo(rel, b.Position, host.Position)
	v := b.Velocity.Norm()
	return 0.5*v*v - gm/rel.Norm()
}

// SpecificAngularMomentum is r x v per unit mass of b relative to host. 2D
// systems yield a vector along z.
func SpecificAngularMomentum(host, b *dynamo.Body) r3.Vec {
	rel := make(dynamo.Vector, len(b.Position))
	floats.SubTo(rel, b.Position, host.Position)
	return r3.Cross(ToR3(rel), ToR3(b.Velocity))
}

// Distance between b and the host.
func Distance(host, b *dynamo.Body) float64 {
	return floats.Distance(b.Position, host.Position, 2)
}

// ToR3 lifts a 2 or 3 component vector into r3, padding z with zero.
func ToR3(v dynamo.Vector) r3.Vec {
	var p r3.Vec
	if len(v) > 0 {
		p.X = v[0]
	}
	if len(v) > 1 {
		p.Y = v[1]
	}
	if len(v) > 2 {
		p.Z = v[2]
	}
	return p
}
