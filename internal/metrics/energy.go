package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// EnergyDrift is the largest relative change of specific orbital energy
// seen on any body since the first observation.
type EnergyDrift struct {
	name     string
	g        float64
	initial  []float64
	maxDrift float64
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		g:    g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *dynamo.System, t float64) {
	gm := e.g * s.Host.Mass
	first := e.initial == nil
	if first {
		e.initial = make([]float64, len(s.Bodies))
	}

	for i, b := range s.Bodies {
		energy := physics.SpecificEnergy(gm, s.Host, b)
		if first {
			e.initial[i] = energy
			continue
		}
		if e.initial[i] != 0 && !math.IsInf(e.initial[i], 0) {
			drift := math.Abs(energy-e.initial[i]) / math.Abs(e.initial[i])
			e.maxDrift = math.Max(e.maxDrift, drift)
		}
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = nil
	e.maxDrift = 0
}

// AngularMomentumDrift is the largest relative change of |r x v| on any body.
type AngularMomentumDrift struct {
	name     string
	initial  []r3.Vec
	maxDrift float64
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{name: "angular_momentum_drift"}
}

func (a *AngularMomentumDrift) Name() string { return a.name }

func (a *AngularMomentumDrift) Observe(s *dynamo.System, t float64) {
	first := a.initial == nil
	if first {
		a.initial = make([]r3.Vec, len(s.Bodies))
	}

	for i, b := range s.Bodies {
		h := physics.SpecificAngularMomentum(s.Host, b)
		if first {
			a.initial[i] = h
			continue
		}
		if h0 := r3.Norm(a.initial[i]); h0 != 0 {
			a.maxDrift = math.Max(a.maxDrift, r3.Norm(r3.Sub(h, a.initial[i]))/h0)
		}
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = nil
	a.maxDrift = 0
}
