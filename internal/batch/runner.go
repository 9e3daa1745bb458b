// Package batch resolves the input set for one bulk-resize invocation,
// fans a resize task out per image, and joins all tasks before returning.
package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"squish/internal/codec"
	"squish/internal/scan"
	"squish/internal/validate"
)

// Runner executes batches. The validator and processor are shared
// read-only across all tasks.
type Runner struct {
	validator validate.Validator
	processor codec.ImageProcessor
	// workers caps concurrent tasks; 0 means one goroutine per input.
	workers int
}

func NewRunner(v validate.Validator, p codec.ImageProcessor, workers int) *Runner {
	if workers < 0 {
		workers = 0
	}
	return &Runner{validator: v, processor: p, workers: workers}
}

// Run validates the argument shape, resolves the concrete input set, and
// processes every image concurrently. Argument-shape and discovery errors
// fail the whole batch before any task starts; per-file errors are
// recorded in their outcome only. An empty resolved set returns zero
// outcomes and nil error. Outcomes are indexed by originating request, so
// the result order matches the input order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) ([]ResizeOutcome, error) {
	if err := r.validator.ValidatePathArgs(opts.Paths, opts.Dir); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("target dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := opts.Paths
	if len(paths) == 0 {
		if err := r.validator.ValidateDirectory(opts.Dir); err != nil {
			return nil, err
		}
		var err error
		paths, err = scan.Scan(opts.Dir, opts.Extensions, opts.Recursive)
		if err != nil {
			return nil, err
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}

	log.Debug().
		Int("count", len(paths)).
		Str("policy", opts.Policy.String()).
		Msg("starting batch")

	var sem chan struct{}
	if r.workers > 0 {
		sem = make(chan struct{}, r.workers)
	}

	outcomes := make([]ResizeOutcome, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			req := ResizeRequest{
				Source: path,
				Width:  opts.Width,
				Height: opts.Height,
				Format: opts.Format,
			}
			outcomes[i] = r.runTask(req, opts.Policy)
		}(i, path)
	}
	wg.Wait()

	return outcomes, nil
}
