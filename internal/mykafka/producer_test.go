package mykafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/metrics"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil, nil)
	require.Error(t, err)
}

func TestNewProducer_WritesAsync(t *testing.T) {
	p, err := NewProducer([]string{"127.0.0.1:1"}, nil)
	require.NoError(t, err)
	assert.True(t, p.writer.Async)
	assert.NotNil(t, p.writer.Completion)
}

func TestPublishEvent_BoundedWhenBrokerIsDown(t *testing.T) {
	p, err := NewProducer([]string{"127.0.0.1:1"}, nil)
	require.NoError(t, err)

	start := time.Now()
	_ = p.PublishEvent(context.Background(), TopicCart, "u1", map[string]any{"type": "cart_item_added"})
	assert.Less(t, time.Since(start), enqueueTimeout+time.Second)
}

func TestCompletion_CountsAndLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProducer([]string{"127.0.0.1:1"}, logging.NewWithWriter(&buf, "warn"))
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.EventsPublishFailed.WithLabelValues(TopicProducts))
	p.onCompletion([]kafka.Message{
		{Topic: TopicProducts, Key: []byte("p1")},
		{Topic: TopicProducts, Key: []byte("p2")},
	}, errors.New("broker down"))
	p.onCompletion([]kafka.Message{{Topic: TopicProducts, Key: []byte("p3")}}, nil)

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.EventsPublishFailed.WithLabelValues(TopicProducts)))
	assert.Contains(t, buf.String(), "event_delivery_failed")
	assert.Contains(t, buf.String(), "broker down")
}

func TestPublishEvent_RoundTrip(t *testing.T) {
	broker := os.Getenv("KAFKA_TEST_BROKER")
	if broker == "" {
		t.Skip("KAFKA_TEST_BROKER not set")
	}
	require.NoError(t, EnsureTopics(broker, TopicCart))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", broker, TopicCart, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     TopicCart,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	p, err := NewProducer([]string{broker}, nil)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.PublishEvent(ctx, TopicCart, "u1", map[string]any{"type": "cart_item_added", "user_id": "u1"}))

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &event))
	require.Equal(t, "cart_item_added", event["type"])
	require.Equal(t, "u1", string(m.Key))
}
