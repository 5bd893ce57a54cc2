package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/LeadScout/internal/config"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/LeadScout/pkg/errors"
)

// ErrProducerClosed is returned after Close.
var ErrProducerClosed = appErrors.New(appErrors.CodeInternal, "producer closed")

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes run lifecycle envelopes. A nil *Producer is a valid
// no-op publisher so that messaging stays optional.
type Producer struct {
	writer WriterInterface
	logger logging.Logger
	closed atomic.Bool
}

// NewProducer builds a producer over a real kafka.Writer.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}

	acks := kafka.RequireOne
	if cfg.RequiredAcks < 0 || cfg.RequiredAcks > 1 {
		acks = kafka.RequireAll
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	retries := cfg.ProducerRetries
	if retries <= 0 {
		retries = 3
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  retries + 1,
		BatchSize:    batchSize,
		BatchTimeout: time.Second,
		RequiredAcks: acks,
		WriteTimeout: 10 * time.Second,
	}
	return &Producer{writer: writer, logger: log.Named("kafka")}
}

// NewProducerWithWriter builds a producer over an injected writer. Used by
// tests.
func NewProducerWithWriter(writer WriterInterface, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Producer{writer: writer, logger: log.Named("kafka")}
}

// Publish wraps payload into an envelope and writes it to topic, keyed by
// key. Nil producers drop everything silently.
func (p *Producer) Publish(ctx context.Context, topic, key, eventType string, payload interface{}) error {
	if p == nil {
		return nil
	}
	if p.closed.Load() {
		return ErrProducerClosed
	}

	env, err := NewEventEnvelope(eventType, "engine", payload)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(topic, key)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish failed",
			logging.String("topic", topic),
			logging.String("key", key),
			logging.Err(err))
		return appErrors.Wrap(err, appErrors.CodeInternal, "failed to publish event")
	}

	p.logger.Debug("event published",
		logging.String("topic", topic),
		logging.String("event_type", eventType))
	return nil
}

// Close shuts the writer down. Later publishes fail with ErrProducerClosed.
func (p *Producer) Close() error {
	if p == nil || p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}

//Personal.AI order the ending
