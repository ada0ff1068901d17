// Package check verifies that every document linked from the table of
// contents can be fetched.
package check

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/progress"
)

// DefaultConcurrency bounds parallel fetches when none is given.
const DefaultConcurrency = 8

// Failure records one document that could not be fetched.
type Failure struct {
	Path string
	Err  error
}

// Result summarises a check run.
type Result struct {
	Checked  int
	Failures []Failure // sorted by path
}

// OK reports whether every document was fetched.
func (r Result) OK() bool { return len(r.Failures) == 0 }

// Run fetches each href with at most concurrency requests in flight. The
// returned error combines every failure; it is nil when all fetches succeed
// and ctx.Err() when the run was canceled.
func Run(ctx context.Context, f fetch.Fetcher, hrefs []string, reporter progress.Reporter, concurrency int) (Result, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu       sync.Mutex
		result   Result
		combined error
	)

	reporter.Start(len(hrefs))
	defer reporter.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, href := range hrefs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := f.Fetch(gctx, href)

			mu.Lock()
			defer mu.Unlock()
			result.Checked++
			reporter.Step(href, err)
			if err != nil {
				result.Failures = append(result.Failures, Failure{Path: href, Err: err})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})
	for _, fl := range result.Failures {
		combined = multierr.Append(combined, fmt.Errorf("%s: %w", fl.Path, fl.Err))
	}
	return result, combined
}
