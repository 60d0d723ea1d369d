package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator defines the contract for consuming messages from a Kafka topic.
// It is used by Iterator to abstract away the details of the underlying
// Kafka consumer.
//
// Implementations are responsible for the lifecycle of the consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been handled.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// HandlerFunc processes one decoded message. A returned error is logged; the
// message is still committed because failed searches are not retried.
type HandlerFunc[T any] func(ctx context.Context, item T) error

// SearchRequest asks for the map of restaurants around Location, optionally
// narrowed to one cuisine label.
type SearchRequest struct {
	Location string `json:"location"`
	Cuisine  string `json:"cuisine,omitempty"`
	// Force re-exports a page that already exists.
	Force bool `json:"force,omitempty"`
}
