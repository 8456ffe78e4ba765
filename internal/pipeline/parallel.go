package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildAll packages several scripts concurrently. Each script gets an
// independent pipeline run (no shared state); results come back in input
// order. The first failing script cancels the remaining runs.
func BuildAll(ctx context.Context, paths []string, configure func(path string) *Request) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.NumCPU(), len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			res, err := Build(gctx, configure(path))
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
