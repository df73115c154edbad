package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// RadiusDeviation is the largest relative change of host distance seen on
// any body. For a circular orbit it measures integration error directly.
type RadiusDeviation struct {
	name    string
	initial []float64
	maxDev  float64
}

func NewRadiusDeviation() *RadiusDeviation {
	return &RadiusDeviation{name: "radius_deviation"}
}

func (r *RadiusDeviation) Name() string { return r.name }

func (r *RadiusDeviation) Observe(s *dynamo.System, t float64) {
	first := r.initial == nil
	if first {
		r.initial = make([]float64, len(s.Bodies))
	}

	for i, b := range s.Bodies {
		d := physics.Distance(s.Host, b)
		if first {
			r.initial[i] = d
			continue
		}
		if r.initial[i] > 0 {
			r.maxDev = math.Max(r.maxDev, math.Abs(d-r.initial[i])/r.initial[i])
		}
	}
}

func (r *RadiusDeviation) Value() float64 { return r.maxDev }

func (r *RadiusDeviation) Reset() {
	r.initial = nil
	r.maxDev = 0
}

// Stability is the fraction of observations in which every body stayed
// within threshold metres of the host.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sys *dynamo.System, t float64) {
	s.samples++
	for _, b := range sys.Bodies {
		if physics.Distance(sys.Host, b) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
