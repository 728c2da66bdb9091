package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/listener"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
	// hang makes ProduceSync wait for ctx like a client facing a dead broker.
	hang bool
}

func (f *fakeProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	if f.hang {
		<-ctx.Done()
		out := make(kgo.ProduceResults, 0, len(rs))
		for _, r := range rs {
			out = append(out, kgo.ProduceResult{Record: r, Err: ctx.Err()})
		}
		return out
	}
	out := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if f.err == nil {
			f.records = append(f.records, r)
		}
		out = append(out, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return out
}

func (f *fakeProducer) Close() { f.closed = true }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSink_Export(t *testing.T) {
	p := &fakeProducer{}
	sink := newSink(p, "roster.test", testLogger())

	event := events.NewJobCompleted("nightly", 5, 0, true, "", 0)
	env, err := listener.NewEnvelope(event)
	require.NoError(t, err)

	require.NoError(t, sink.Export(context.Background(), env))
	require.Len(t, p.records, 1)

	rec := p.records[0]
	assert.Equal(t, "roster.test", rec.Topic)
	assert.Equal(t, event.EventID().String(), string(rec.Key))
	require.Len(t, rec.Headers, 2)
	assert.Equal(t, events.TypeJobCompleted, string(rec.Headers[0].Value))

	var decoded listener.Envelope
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, env.EventID, decoded.EventID)
	assert.Equal(t, events.FamilySystem, decoded.Family)
	assert.JSONEq(t, string(env.Payload), string(decoded.Payload))

	sink.Close()
	assert.True(t, p.closed)
}

func TestSink_ExportError(t *testing.T) {
	p := &fakeProducer{err: errors.New("broker unavailable")}
	sink := newSink(p, DefaultTopic, testLogger())

	env, err := listener.NewEnvelope(events.NewApplicationStarted("dev"))
	require.NoError(t, err)

	err = sink.Export(context.Background(), env)
	assert.ErrorContains(t, err, "broker unavailable")
	assert.ErrorContains(t, err, events.TypeApplicationStarted)
}

func TestSink_ExportIsBounded(t *testing.T) {
	sink := newSink(&fakeProducer{hang: true}, DefaultTopic, testLogger())
	sink.timeout = 50 * time.Millisecond

	env, err := listener.NewEnvelope(events.NewApplicationStarted("dev"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- sink.Export(context.WithoutCancel(context.Background()), env) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("export did not give up on an unreachable broker")
	}
}

func TestNewSink_NoBrokers(t *testing.T) {
	_, err := NewSink(config.KafkaConfig{}, testLogger())
	assert.ErrorIs(t, err, ErrNoBrokers)
}
