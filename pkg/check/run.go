package check

import (
	"context"

	"github.com/praetorian-inc/spellcheck/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Run checks every path concurrently and returns one result per path, in
// the order of paths. A file that fails to decode or check carries its error
// in FileResult.Err; it never stops its siblings. Run only returns an error
// when ctx is cancelled, in which case no partial results are returned.
func (c *Checker) Run(ctx context.Context, paths []string) ([]types.FileResult, error) {
	results := make([]types.FileResult, len(paths))

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int, c.workers*2)

	// Feed indexes to workers
	g.Go(func() error {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < min(c.workers, max(len(paths), 1)); w++ {
		g.Go(func() error {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				res := c.CheckFile(ctx, paths[i])
				if res.Err != nil {
					c.logger.Warn("file check failed", "path", res.Path, "err", res.Err)
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Workers may finish before noticing a cancellation.
	if err := origCtx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
