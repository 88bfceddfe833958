// internal/browser/render/batch.go
package render

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RenderBatch renders independent documents in parallel, at most
// Concurrency at a time. results[i] belongs to inputs[i] and is nil when that
// document failed. Failures do not stop the other documents; they are combined
// into the returned error.
func (r *Renderer) RenderBatch(ctx context.Context, inputs []Input) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	errs := make([]error, len(inputs))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	r.logger.Info("Starting batch render.",
		zap.Int("documents", len(inputs)),
		zap.Int("concurrency", r.cfg.Concurrency))

	for i, in := range inputs {
		g.Go(func() error {
			res, err := r.Render(groupCtx, in)
			if err != nil {
				errs[i] = fmt.Errorf("document %q: %w", in.Name, err)
				r.logger.Warn("Document failed to render.", zap.String("document", in.Name), zap.Error(err))
				return nil
			}
			results[i] = res
			return nil
		})
	}
	// Workers never return errors, so Wait only reports completion.
	_ = g.Wait()

	err := multierr.Combine(errs...)
	r.logger.Info("Batch render finished.",
		zap.Int("documents", len(inputs)),
		zap.Int("failed", len(multierr.Errors(err))))
	return results, err
}
