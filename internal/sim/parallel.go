package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Job is one independent simulation. Jobs must not share a System.
type Job struct {
	Name       string
	System     *dynamo.System
	Force      dynamo.ForceModel
	Integrator dynamo.Integrator
	Metrics    []dynamo.Metric
	Config     Config
}

// Ensemble runs independent jobs concurrently. Each job is still stepped
// sequentially; only whole runs overlap.
type Ensemble struct {
	jobs  []Job
	limit int
}

// NewEnsemble runs at most limit jobs at once; limit <= 0 means unbounded.
func NewEnsemble(limit int) *Ensemble {
	return &Ensemble{limit: limit}
}

func (e *Ensemble) Add(job Job) { e.jobs = append(e.jobs, job) }

func (e *Ensemble) Len() int { return len(e.jobs) }

// Run returns results in job order. The first failing job cancels ctx for
// jobs that have not started yet; the error names the job.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range e.jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s := New(job.Force, job.Integrator)
			for _, m := range job.Metrics {
				s.AddMetric(m)
			}

			res, err := s.Run(job.System, job.Config)
			results[i] = res
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
