//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/adapter/kafka"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/config"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/observability"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/pipeline"
)

const (
	testSourceTopic = "test-source"
	testSinkTopic   = "test-sink"
)

// scoredMessage holds a deserialized message read from the sink topic.
type scoredMessage struct {
	Obs     domain.ScoredObservation
	Key     string
	Headers map[string]string
}

// readScored reads a single message from the sink consumer and deserializes it.
func readScored(ctx context.Context, t *testing.T, consumer *kafkago.Reader) scoredMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var obs domain.ScoredObservation
	require.NoError(t, json.Unmarshal(msg.Value, &obs), "unmarshal sink message")

	return scoredMessage{
		Obs:     obs,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (extractor)
// and kafka.Writer (loader) correctly round-trip a message through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-reader-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish a raw observation to the source topic.
	records := mockObservations()
	record := records[0] // Aracaju: clean coastal air, scores Good
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("test-key"),
		Value: payload,
	}))

	// Extract via kafka.Reader.
	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("test-key"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")

	// Commit the offset.
	require.NoError(t, raw.Commit(ctx))

	// Transform the raw event into an output event.
	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(nil, discardLogger(), metrics)
	out, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	// Load via kafka.Writer.
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputEvent{out}))

	// Read from the sink topic and verify headers + value.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	sm := readScored(ctx, t, consumer)
	assert.Equal(t, "o3", sm.Headers["dominant_pollutant"])
	assert.Equal(t, "Good", sm.Headers["category"])

	assert.Equal(t, sm.Obs.ID, sm.Key, "message key should be the observation ID")
	assert.Equal(t, "Aracaju", sm.Obs.Name)
	assert.Equal(t, 31, sm.Obs.Result.OverallAQI)
	assert.Equal(t, "Good", sm.Obs.Category.Level)
	assert.False(t, sm.Obs.ProcessedAt.IsZero())
}

// TestPipelineEndToEnd wires the full pipeline (Reader, Transformer, Writer)
// with real Kafka and verifies that every observation is correctly scored.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-pipeline-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish all mock observations to the source topic.
	records := mockObservations()

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(records))
	for i, rec := range records {
		payload, err := json.Marshal(rec)
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(fmt.Sprintf("record-%d", i)),
			Value: payload,
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(nil, discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	// Run the pipeline in a goroutine.
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Read all scored messages from the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make([]scoredMessage, 0, len(records))
	for len(received) < len(records) {
		sm := readScored(ctx, t, consumer)
		received = append(received, sm)
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	require.Len(t, received, len(records))
	byName := map[string]scoredMessage{}
	for _, sm := range received {
		byName[sm.Obs.Name] = sm

		// Every message must carry routing headers matching the body.
		assert.Equal(t, sm.Obs.Category.Level, sm.Headers["category"])
		assert.Equal(t, sm.Obs.Result.Dominant.String(), sm.Headers["dominant_pollutant"])
		assert.False(t, sm.Obs.ProcessedAt.IsZero(), "missing processed_at")
	}

	// Spot-check the Aracaju record: clean air, ozone dominant.
	aracaju, ok := byName["Aracaju"]
	require.True(t, ok, "expected Aracaju record on sink topic")
	assert.Equal(t, 31, aracaju.Obs.Result.OverallAQI)
	assert.Equal(t, "Good", aracaju.Obs.Category.Level)
	assert.Equal(t, "o3", aracaju.Obs.Result.Dominant.String())
	// Provider-only components ("no", "nh3") must not appear as sub-indexes.
	assert.Len(t, aracaju.Obs.Result.PerPollutant, 6)

	// Spot-check Los Angeles: moderate particulates.
	la, ok := byName["Los Angeles"]
	require.True(t, ok, "expected Los Angeles record on sink topic")
	assert.Equal(t, 76, la.Obs.Result.OverallAQI)
	assert.Equal(t, "Moderate", la.Obs.Category.Level)
	assert.Equal(t, "pm2_5", la.Obs.Result.Dominant.String())

	// Spot-check Delhi: very unhealthy particulates.
	delhi, ok := byName["Delhi"]
	require.True(t, ok, "expected Delhi record on sink topic")
	assert.Equal(t, 208, delhi.Obs.Result.OverallAQI)
	assert.Equal(t, "Very Unhealthy", delhi.Obs.Category.Level)
	assert.Equal(t, "pm2_5", delhi.Obs.Result.Dominant.String())
}

// TestPipelineTransformError verifies that an invalid message (poison pill) is
// skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-poison-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish: invalid JSON, then a valid observation.
	records := mockObservations()
	validPayload, err := json.Marshal(records[0])
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("good"), Value: validPayload},
	))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(nil, discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Only the valid message should appear on the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	sm := readScored(ctx, t, consumer)
	assert.Equal(t, "Aracaju", sm.Obs.Name)
	assert.Equal(t, 31, sm.Obs.Result.OverallAQI)

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
