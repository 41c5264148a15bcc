package frame

import (
	"context"
	"sync"
)

// EnsembleResult is the outcome of one seeded run.
type EnsembleResult struct {
	Seed     int64
	Counters Counters
	Metrics  map[string]float64
}

// Ensemble steps several independent drivers, one per seed, on a fixed
// time step.
type Ensemble struct {
	cfg        Config
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, frames int, dt float64) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.Seed = e.seedStart + int64(idx)

			d, err := New(cfg, WithClock(NewStepClock(0, dt)))
			if err != nil {
				errs[idx] = err
				return
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					d.AddMetric(m)
				}
			}

			for n := 0; n < frames; n++ {
				if n%64 == 0 {
					if err := ctx.Err(); err != nil {
						errs[idx] = err
						return
					}
				}
				d.Advance()
			}
			results[idx] = EnsembleResult{Seed: cfg.Seed, Counters: d.Counters(), Metrics: d.Metrics()}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
