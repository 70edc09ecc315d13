package events

import (
	"context"
	"encoding/json"
	"time"

	"roots-catalog/internal/config"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishTimeout bounds how long a write request waits on the broker.
const publishTimeout = 2 * time.Second

// kafkaPublisher implements Publisher on a Kafka topic.
type kafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewKafkaPublisher creates a publisher writing to cfg.Topic on cfg.Brokers.
// Messages are keyed by product ID so that changes to one product stay ordered.
func NewKafkaPublisher(cfg config.EventsConfig, logger zerolog.Logger) Publisher {
	logger = logger.With().Str("component", "product-events").Logger()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: publishTimeout,
		MaxAttempts:  2,
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("kafka publisher initialised")

	return newKafkaPublisher(writer, logger)
}

func newKafkaPublisher(writer messageWriter, logger zerolog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer:  writer,
		timeout: publishTimeout,
		logger:  logger,
	}
}

// Publish writes event to Kafka. The write has already been committed, so the
// event is sent even if the request that caused it has gone away.
func (p *kafkaPublisher) Publish(ctx context.Context, event ProductEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("product_id", event.ProductID).Msg("failed to encode product event")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
		Time:  event.OccurredAt,
	})
	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("type", string(event.Type)).
			Str("product_id", event.ProductID).
			Msg("failed to publish product event")
		return
	}

	p.logger.Debug().
		Str("type", string(event.Type)).
		Str("product_id", event.ProductID).
		Msg("product event published")
}

// Close flushes pending messages and closes the writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
