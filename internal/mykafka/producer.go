package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/marketplace/pkg/metrics"
)

const (
	TopicUsers    = "user_events"
	TopicProducts = "product_events"
	TopicCart     = "cart_events"

	writeTimeout = 5 * time.Second
	// Async writes only wait on partition metadata.
	enqueueTimeout = time.Second
)

type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer builds an async writer over the given brokers. Topics are
// chosen per message; delivery failures surface through the logger and the
// events_publish_failed_total counter.
func NewProducer(brokers []string, log *slog.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Producer{log: log}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             p.onCompletion,
	}
	return p, nil
}

func (p *Producer) onCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		metrics.EventsPublishFailed.WithLabelValues(m.Topic).Inc()
		p.log.Warn("event_delivery_failed", "topic", m.Topic, "key", string(m.Key), "error", err)
	}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, enqueueTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

// Close flushes pending messages before closing the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// EnsureTopics creates the topics on the cluster controller if they are
// missing.
func EnsureTopics(broker string, topics ...string) error {
	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return fmt.Errorf("kafka: dial %s: %w", broker, err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("kafka: controller: %w", err)
	}
	admin, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("kafka: dial controller: %w", err)
	}
	defer admin.Close()

	cfgs := make([]kafka.TopicConfig, 0, len(topics))
	for _, t := range topics {
		cfgs = append(cfgs, kafka.TopicConfig{Topic: t, NumPartitions: 1, ReplicationFactor: 1})
	}
	return admin.CreateTopics(cfgs...)
}
