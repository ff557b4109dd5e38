package artifact

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ec2bgen/internal/ec2b"
)

// GeneratorFunc returns the generator for batch job i. Jobs run
// concurrently, so generators must not share a non-thread-safe random source.
type GeneratorFunc func(i int) *ec2b.Generator

// Batch generates n artifact pairs with at most workers jobs in flight and
// writes them with w. A single pair goes straight into w.Dir; larger batches
// use one numbered subdirectory per pair. The first failure cancels jobs that
// have not started yet.
func Batch(ctx context.Context, n, workers int, newGenerator GeneratorFunc, w *Writer) ([]Record, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch size %d: must be at least 1", n)
	}

	records := make([]Record, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			a, err := newGenerator(i).GenerateArtifacts()
			if err != nil {
				return fmt.Errorf("generating pair %d: %w", i, err)
			}

			sub := ""
			if n > 1 {
				sub = fmt.Sprintf("%04d", i)
			}
			rec, err := w.Write(sub, a)
			if err != nil {
				return fmt.Errorf("writing pair %d: %w", i, err)
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
