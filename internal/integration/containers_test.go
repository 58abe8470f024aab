//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
)

// startKafka launches a single-node Kafka container and returns its broker
// address. The container is torn down when the test finishes.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve broker addresses")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic on the broker's controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockObservations returns raw observation records spanning several AQI
// categories, mirroring the genmock fixture profiles.
func mockObservations() []domain.RawObservationRecord {
	const dt = 1787227200 // 2026-08-20T12:00:00Z

	return []domain.RawObservationRecord{
		{
			Name: "Aracaju", Lat: -10.9472, Lon: -37.0731, Dt: dt,
			Components: map[string]float64{
				"co": 201.94, "no": 0.02, "no2": 0.77, "o3": 68.66,
				"so2": 0.64, "pm2_5": 0.5, "pm10": 0.54, "nh3": 0.12,
			},
		},
		{
			Name: "Los Angeles", Lat: 34.0522, Lon: -118.2437, Dt: dt,
			Components: map[string]float64{
				"co": 450.61, "no2": 35.99, "o3": 92.98,
				"so2": 4.29, "pm2_5": 22.5, "pm10": 31.2,
			},
		},
		{
			Name: "Delhi", Lat: 28.7041, Lon: 77.1025, Dt: dt,
			Components: map[string]float64{
				"co": 2216.34, "no2": 98.7, "o3": 54.36,
				"so2": 28.61, "pm2_5": 132.45, "pm10": 204.18,
			},
		},
	}
}
