package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleveque/store-context/internal/model"
)

// BatchItem is the outcome of one lookup in a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Identifier string
	Result     *model.LookupResult
	Err        error
}

// LookupMany runs independent lookups with at most parallelism in flight.
// Items come back in input order. One lookup failing does not cancel the
// others; only ctx does. Lookups not started before ctx ends carry ctx.Err(),
// and the returned error is non-nil when that cut the batch short.
func (s *LookupService) LookupMany(ctx context.Context, identifiers []string, parallelism int) ([]BatchItem, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	items := make([]BatchItem, len(identifiers))

	// Per-item failures stay in items; only cancellation reaches the group.
	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, id := range identifiers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i] = BatchItem{Identifier: id, Err: err}
				return err
			}
			result, err := s.Lookup(ctx, id)
			items[i] = BatchItem{Identifier: id, Result: result, Err: err}
			return nil
		})
	}
	waitErr := g.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch lookup complete",
		zap.Int("total", len(items)),
		zap.Int("failed", failed),
	)

	return items, waitErr
}
