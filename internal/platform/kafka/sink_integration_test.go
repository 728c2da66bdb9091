//go:build integration

package kafka_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/listener"
	"github.com/phrazzld/roster-api/internal/platform/kafka"
)

func TestSink_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.1.7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	broker, err := container.KafkaSeedBroker(ctx)
	require.NoError(t, err)

	const topic = "roster.events.test"
	createTopic(ctx, t, broker, topic)

	sink, err := kafka.NewSink(config.KafkaConfig{Brokers: []string{broker}, Topic: topic},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer sink.Close()

	env, err := listener.NewEnvelope(events.NewApplicationStarted("it"))
	require.NoError(t, err)
	require.NoError(t, sink.Export(ctx, env))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())

	records := fetches.Records()
	require.NotEmpty(t, records)
	assert.Equal(t, env.EventID.String(), string(records[0].Key))
	assert.Contains(t, string(records[0].Value), `"event_type":"system.application_started"`)
}

func createTopic(ctx context.Context, t *testing.T, broker, topic string) {
	t.Helper()
	cl, err := kgo.NewClient(kgo.SeedBrokers(broker))
	require.NoError(t, err)
	defer cl.Close()

	resp, err := kadm.NewClient(cl).CreateTopic(ctx, 1, 1, nil, topic)
	require.NoError(t, err)
	require.NoError(t, resp.Err)
}
