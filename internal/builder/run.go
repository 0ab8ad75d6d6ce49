package builder

import (
	"context"

	"github.com/vk/jade/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// BuildAll builds every resource concurrently, at most workers at a time
// (workers <= 0 means no limit), and waits for all of them. Reports are
// returned in the order of resources.
func BuildAll(ctx context.Context, resources []*Resource, workers int) []*Report {
	logger := ctxlog.FromContext(ctx)
	reports := make([]*Report, len(resources))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	logger.Debug("Starting resource builds.", "resources", len(resources), "workers", workers)

	for i, r := range resources {
		i, r := i, r
		g.Go(func() error {
			reports[i] = r.Build(ctx)
			return nil
		})
	}
	// Resource builds never return errors; failures live in the reports.
	_ = g.Wait()

	return reports
}
