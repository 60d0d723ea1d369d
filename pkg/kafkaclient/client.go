package kafkaclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaReader defines the interface for a Kafka message reader.
// This allows for easy mocking in unit tests.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer runs a read loop and hands messages to a single downstream
// reader through Messages. Offsets are committed explicitly.
type Consumer struct {
	reader KafkaReader
	log    *slog.Logger
	// closed to ask the read loop to stop
	doneChan    chan struct{}
	wg          sync.WaitGroup
	messageChan chan kafka.Message
	stopOnce    sync.Once
}

// NewConsumer creates a consumer for topic within groupID.
func NewConsumer(topic, groupID, broker string, log *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Offsets are committed by CommitOffset only.
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return newConsumer(reader, log)
}

func newConsumer(reader KafkaReader, log *slog.Logger) *Consumer {
	return &Consumer{
		reader:      reader,
		log:         log,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

// Messages is closed when the read loop exits.
func (kc *Consumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

func (kc *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	kc.log.Debug("committing offset", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
	return kc.reader.CommitMessages(ctx, msg)
}

// StartConsuming begins the read loop in a separate goroutine.
func (kc *Consumer) StartConsuming(ctx context.Context) {
	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		kc.log.Info("starting kafka consumer loop")
		for {
			select {
			case <-ctx.Done():
				return
			case <-kc.doneChan:
				return
			default:
			}

			msg, err := kc.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					return
				}
				kc.log.Error("error reading message", "error", err)
				// avoid a tight loop while the broker is unavailable
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				case <-kc.doneChan:
					return
				}
				continue
			}

			select {
			case kc.messageChan <- msg:
				kc.log.Debug("message received", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			case <-ctx.Done():
				return
			case <-kc.doneChan:
				return
			}
		}
	}()
}

// Stop shuts the read loop down and closes the reader. It is safe to call
// more than once.
func (kc *Consumer) Stop() {
	kc.stopOnce.Do(func() {
		close(kc.doneChan)
		kc.wg.Wait()
		if err := kc.reader.Close(); err != nil {
			kc.log.Error("failed to close kafka reader", "error", err)
		}
		kc.log.Info("kafka consumer stopped")
	})
}
