package sim

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// minChunk is the fewest bodies worth handing to a worker.
const minChunk = 16

// forEach calls fn for every index in [0, n), split across the configured
// workers. fn must only write state owned by its index.
func (s *Simulation) forEach(n int, fn func(i int)) {
	workers := s.workers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}()
	}
	wg.Wait()
}

// RunAll runs independent simulations concurrently with the same config.
// Results are in input order; the first error cancels the remaining runs.
func RunAll(ctx context.Context, sims []*Simulation, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(sims))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sims {
		g.Go(func() error {
			res, err := s.Run(ctx, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
