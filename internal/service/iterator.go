// Package service drives queued work: it decodes messages from a message
// source (e.g., Kafka via pkg/kafkaclient) into typed requests and hands them
// to a handler one at a time.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Iterator consumes messages from a MessageIterator, decodes each value as
// JSON into T and passes it to a handler. It does not manage the lifecycle of
// the underlying message source.
type Iterator[T any] struct {
	msgIterator MessageIterator
	log         *slog.Logger
}

func NewIterator[T any](iterator MessageIterator, log *slog.Logger) *Iterator[T] {
	return &Iterator[T]{msgIterator: iterator, log: log}
}

// Run handles messages sequentially until the message channel is closed or
// ctx is done. For each message:
//  1. The value is decoded into T; undecodable messages are logged and committed
//  2. The handler runs to completion
//  3. The offset is committed
//
// It returns the number of messages handled successfully.
func (it *Iterator[T]) Run(ctx context.Context, handle HandlerFunc[T]) int {
	handled := 0
	for {
		select {
		case <-ctx.Done():
			return handled
		case msg, ok := <-it.msgIterator.Messages():
			if !ok {
				return handled
			}

			var item T
			if err := json.Unmarshal(msg.Value, &item); err != nil {
				it.log.Error("error unmarshalling message", "error", err, "offset", msg.Offset)
			} else if err := handle(ctx, item); err != nil {
				it.log.Error("error handling message", "error", err, "offset", msg.Offset)
			} else {
				handled++
			}

			if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
				it.log.Error("failed to commit offset", "error", err, "offset", msg.Offset)
			}
		}
	}
}
