package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// DefaultCVThreshold is the coefficient of variation, in percent, below
// which swept areas count as equal.
const DefaultCVThreshold = 1.0

var ErrTooFewSamples = errors.New("analysis: not enough samples")

// SweptAreas splits path into intervals slices with the same number of
// samples and returns the area swept by the center-to-body radius in each.
// Trailing samples that do not fill a slice are ignored. Samples must be
// equally spaced in time.
func SweptAreas(center dynamo.Vector, path []dynamo.Vector, intervals int) ([]float64, error) {
	if intervals < 1 {
		return nil, fmt.Errorf("analysis: intervals must be positive, got %d", intervals)
	}
	segments := len(path) - 1
	if segments < intervals {
		return nil, fmt.Errorf("%w: %d samples for %d intervals", ErrTooFewSamples, len(path), intervals)
	}

	c := physics.ToR3(center)
	per := segments / intervals
	areas := make([]float64, intervals)

	for k := range areas {
		start := k * per
		var area float64
		for i := start; i < start+per; i++ {
			a := r3.Sub(physics.ToR3(path[i]), c)
			b := r3.Sub(physics.ToR3(path[i+1]), c)
			area += 0.5 * r3.Norm(r3.Cross(a, b))
		}
		areas[k] = area
	}

	return areas, nil
}

// KeplerReport summarizes a set of swept areas.
type KeplerReport struct {
	Areas     []float64
	Mean      float64
	Std       float64 // population standard deviation
	CV        float64 // Std / Mean in percent
	Threshold float64
	Pass      bool
}

// SecondLaw checks that areas are equal to within threshold percent.
func SecondLaw(areas []float64, threshold float64) KeplerReport {
	report := KeplerReport{Areas: areas, Threshold: threshold}
	if len(areas) == 0 {
		return report
	}

	report.Mean, report.Std = stat.PopMeanStdDev(areas, nil)
	if report.Mean > 0 {
		report.CV = report.Std / report.Mean * 100
	} else {
		report.CV = math.Inf(1)
	}
	report.Pass = report.CV < threshold
	return report
}
