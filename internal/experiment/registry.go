package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	metrics     map[string]func(cfg *config.Config) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		metrics:     make(map[string]func(*config.Config) dynamo.Metric),
	}

	r.integrators[integrators.VelocityVerlet.String()] = func() dynamo.Integrator { return integrators.NewVerlet() }
	r.integrators[integrators.ExplicitEuler.String()] = func() dynamo.Integrator { return integrators.NewEuler() }

	r.metrics["energy_drift"] = func(cfg *config.Config) dynamo.Metric { return metrics.NewEnergyDrift(cfg.G()) }
	r.metrics["angular_momentum_drift"] = func(*config.Config) dynamo.Metric { return metrics.NewAngularMomentumDrift() }
	r.metrics["radius_deviation"] = func(*config.Config) dynamo.Metric { return metrics.NewRadiusDeviation() }
	r.metrics["stability"] = func(cfg *config.Config) dynamo.Metric { return metrics.NewStability(cfg.EscapeDistance()) }

	return r
}

// GetIntegrator accepts any spelling integrators.ParseScheme does.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	scheme, err := integrators.ParseScheme(name)
	if err != nil {
		return nil, err
	}
	fn, ok := r.integrators[scheme.String()]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

// GetMetric builds the named metric for a run of cfg.
func (r *Registry) GetMetric(name string, cfg *config.Config) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg), nil
}

func (r *Registry) ListMetrics() []string {
	return sortedKeys(r.metrics)
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](cfg))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
