// Package enrich provides a small, generic pipeline abstraction that runs
// independent steps in parallel within a stage while keeping stages strictly
// sequential.
package enrich

import (
	"context"
)

// Step is a single operation that mutates the given item. Steps in the same
// stage run concurrently on the same item, so they must write disjoint fields.
// A non-nil error stops the pipeline for that item after the current stage.
//
// Example:
//
//	func render(ctx context.Context, j *Job) error { j.Page = ...; return nil }
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single item.
// The pipeline waits for all of them before moving to the next stage.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

// NewStage constructs a named Stage from the provided steps.
func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}

func (s Stage[T]) Name() string { return s.name }
