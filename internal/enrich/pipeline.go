package enrich

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pipeline applies a sequence of stages to an item. Pipeline is generic over
// the item type T.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages. Stages will be
// applied to each item in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Run executes every stage against item. All steps in a stage are started
// together and must finish before the next stage begins. The first step
// error ends the run and is returned wrapped with the stage name.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) error {
	for _, stage := range p.stages {
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range stage.steps {
			g.Go(func() error {
				return step(gctx, item)
			})
		}
		// stage barrier
		if err := g.Wait(); err != nil {
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}
	}
	return nil
}
