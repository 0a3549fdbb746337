package syncer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/regionsync/internal/extract"
)

// Job is one pair to sync with the given strategy.
type Job struct {
	Strategy extract.Strategy
	Pair     Pair
}

// Runner syncs a batch of independent jobs.
type Runner struct {
	workers int
	logf    Logf
	opts    []Option
}

// NewRunner creates a Runner that runs up to workers jobs at once. Engine
// options are applied to every job; logf receives each job's progress
// messages as a block once the job finishes.
func NewRunner(workers int, logf Logf, opts ...Option) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Runner{workers: workers, logf: logf, opts: opts}
}

// Run syncs every job and returns the results in job order. A failing job
// does not stop the others. Run only returns an error if the batch itself is
// invalid: two jobs writing the same target.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Report, error) {
	if err := checkDistinctTargets(jobs); err != nil {
		return nil, err
	}

	report := &Report{Results: make([]Result, len(jobs))}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		g.Go(func() error {
			var lines []string
			collect := func(format string, args ...any) {
				lines = append(lines, fmt.Sprintf(format, args...))
			}

			opts := append(append([]Option{}, r.opts...), WithLogf(collect))
			report.Results[i] = New(job.Strategy, opts...).Sync(ctx, job.Pair)

			mu.Lock()
			defer mu.Unlock()
			for _, line := range lines {
				r.logf("%s", line)
			}
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}

// checkDistinctTargets rejects batches where two jobs name the same target.
func checkDistinctTargets(jobs []Job) error {
	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		key := job.Pair.Target
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: jobs %d and %d both write %s", ErrDuplicateTarget, prev+1, i+1, job.Pair.Target)
		}
		seen[key] = i
	}
	return nil
}
