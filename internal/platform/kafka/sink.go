// Package kafka exports domain event envelopes to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/listener"
)

// DefaultTopic is used when the configuration names none.
const DefaultTopic = "roster.events"

// DefaultExportTimeout bounds one Export, retries included. Async handlers
// run without cancellation, so an unreachable broker must not hold a worker.
const DefaultExportTimeout = 10 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoBrokers is returned by NewSink when no broker is configured.
var ErrNoBrokers = errors.New("kafka: at least one broker is required")

// producer is the part of *kgo.Client the sink uses.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Sink produces envelopes synchronously, keyed by aggregate.
type Sink struct {
	client  producer
	topic   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewSink connects a franz-go client to the configured brokers.
func NewSink(cfg config.KafkaConfig, logger *slog.Logger) (*Sink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ClientID("roster-api"),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RecordDeliveryTimeout(DefaultExportTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return newSink(client, topic, logger), nil
}

func newSink(p producer, topic string, logger *slog.Logger) *Sink {
	return &Sink{
		client:  p,
		topic:   topic,
		timeout: DefaultExportTimeout,
		logger:  logger.With("component", "kafka_sink", "topic", topic),
	}
}

// Export implements listener.Sink.
func (s *Sink) Export(ctx context.Context, env listener.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(env.Key()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(env.EventType)},
			{Key: "event_id", Value: []byte(env.EventID.String())},
		},
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", env.EventType, err)
	}
	s.logger.DebugContext(ctx, "event exported", "event_id", env.EventID.String(), "event_type", env.EventType)
	return nil
}

// Close releases the client.
func (s *Sink) Close() {
	s.client.Close()
}
