package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/hazard-zone-service/internal/config"
	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces match events to the configured Kafka topic.
// It implements query.MatchPublisher.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates an asynchronous Kafka producer for the match topic.
// Delivery failures are reported through the logger.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaMatchTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(msgs []kafkago.Message, err error) {
			if err != nil {
				logger.Error("match event delivery failed", "messages", len(msgs), "error", err)
			}
		},
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishMatch serializes and enqueues one match event, keyed by the
// highest-risk zone so events for a zone stay on one partition.
func (p *Publisher) PublishMatch(ctx context.Context, event domain.MatchEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a MatchEvent into a Kafka message.
func serializeToMessage(event domain.MatchEvent) (kafkago.Message, error) {
	if len(event.Zones) == 0 {
		return kafkago.Message{}, fmt.Errorf("serialize match event: no zones")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize match event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Zones[0]),
		Value: data,
		Time:  event.QueriedAt,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(event.HighestRisk.String())},
			{Key: "queried_at", Value: []byte(event.QueriedAt.Format(time.RFC3339))},
		},
	}, nil
}
