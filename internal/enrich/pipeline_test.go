package enrich

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type pipelineItem struct {
	mu      sync.Mutex
	Results map[string]any
	Order   []string
}

func newPipelineItem() *pipelineItem {
	return &pipelineItem{Results: make(map[string]any)}
}

func (p *pipelineItem) set(key string, val any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Results[key] = val
	p.Order = append(p.Order, key)
}

func stepAddValue(key string, val any) Step[pipelineItem] {
	return func(_ context.Context, item *pipelineItem) error {
		item.set(key, val)
		return nil
	}
}

var errStep = errors.New("mock step failed")

func stepError(_ context.Context, _ *pipelineItem) error {
	return errStep
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name     string
		stages   []Stage[pipelineItem]
		expected map[string]any
		wantErr  bool
	}{
		{
			name:     "single step",
			stages:   []Stage[pipelineItem]{NewStage("one", stepAddValue("foo", "bar"))},
			expected: map[string]any{"foo": "bar"},
		},
		{
			name: "two steps in one stage run in parallel",
			stages: []Stage[pipelineItem]{
				NewStage("both", stepAddValue("x", 1), stepAddValue("y", 2)),
			},
			expected: map[string]any{"x": 1, "y": 2},
		},
		{
			name: "multi-stage sequential dependency",
			stages: []Stage[pipelineItem]{
				NewStage("first", stepAddValue("a", "first")),
				NewStage("second", stepAddValue("b", "second")),
			},
			expected: map[string]any{"a": "first", "b": "second"},
		},
		{
			name: "step error stops later stages",
			stages: []Stage[pipelineItem]{
				NewStage("ok", stepAddValue("before", true)),
				NewStage("broken", stepError),
				NewStage("never", stepAddValue("after", true)),
			},
			expected: map[string]any{"before": true},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			item := newPipelineItem()
			err := NewPipeline(tt.stages...).Run(ctx, item)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errStep) {
				t.Errorf("error should wrap the step error, got %v", err)
			}
			if !reflect.DeepEqual(item.Results, tt.expected) {
				t.Errorf("got %+v, expected %+v", item.Results, tt.expected)
			}
		})
	}
}

func TestPipeline_StageBarrier(t *testing.T) {
	slow := func(_ context.Context, item *pipelineItem) error {
		time.Sleep(20 * time.Millisecond)
		item.set("slow", true)
		return nil
	}
	item := newPipelineItem()
	p := NewPipeline(
		NewStage("first", slow, stepAddValue("fast", true)),
		NewStage("second", stepAddValue("last", true)),
	)
	if err := p.Run(context.Background(), item); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := item.Order[len(item.Order)-1]; got != "last" {
		t.Fatalf("second stage ran before the first finished: %v", item.Order)
	}
}
