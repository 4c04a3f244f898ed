// Package kafka publishes campaign change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"campaign-manager/internal/config/configs"
	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// flushTimeoutMs bounds how long Close waits for queued messages.
const flushTimeoutMs = 5000

// Publisher implements port.EventPublisher with an asynchronous producer.
// Messages are keyed by campaign id so every change of one campaign lands
// on the same partition in order.
type Publisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
	done     chan struct{}
}

var _ port.EventPublisher = (*Publisher)(nil)

// NewPublisher connects a producer to the configured brokers.
func NewPublisher(cfg configs.Kafka, logger *slog.Logger) (*Publisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": strings.Join(cfg.Brokers, ","),
		"client.id":         cfg.ClientID,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	p := &Publisher{
		producer: producer,
		topic:    cfg.Topic,
		logger:   logger.With(slog.String("component", "kafka")),
		done:     make(chan struct{}),
	}
	go p.deliveries()
	return p, nil
}

func (p *Publisher) deliveries() {
	defer close(p.done)
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				p.logger.Warn("change event delivery failed",
					slog.String("key", string(ev.Key)),
					slog.Any("error", ev.TopicPartition.Error))
			}
		case kafka.Error:
			p.logger.Warn("kafka producer error", slog.Any("error", ev))
		}
	}
}

// Publish enqueues the event. Delivery is confirmed asynchronously.
func (p *Publisher) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(ev.CampaignID),
		Value:          value,
		Headers:        []kafka.Header{{Key: "type", Value: []byte(ev.Type)}},
	}
	if err = p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("produce change event: %w", err)
	}
	return nil
}

// Close flushes pending messages and releases the producer.
func (p *Publisher) Close() {
	if left := p.producer.Flush(flushTimeoutMs); left > 0 {
		p.logger.Warn("unflushed change events dropped", slog.Int("count", left))
	}
	p.producer.Close()
	<-p.done
}
