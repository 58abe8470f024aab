package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("obs-1"),
		Value:     []byte(`{"lat":-10.9472,"lon":-37.0731}`),
		Topic:     "raw-air-quality-observations",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("openweathermap")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("obs-1"), raw.Key)
	assert.JSONEq(t, `{"lat":-10.9472,"lon":-37.0731}`, string(raw.Value))
	assert.Equal(t, "raw-air-quality-observations", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "openweathermap", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapOutputToMessage(t *testing.T) {
	out := domain.OutputEvent{
		Key:   []byte("obs-1"),
		Value: []byte(`{"overall_aqi":76}`),
		Headers: map[string]string{
			"dominant_pollutant": "pm2_5",
			"category":           "Moderate",
		},
	}

	msg := mapOutputToMessage(out)

	assert.Equal(t, []byte("obs-1"), msg.Key)
	assert.Equal(t, []byte(`{"overall_aqi":76}`), msg.Value)
	// Sorted header order: "category" before "dominant_pollutant".
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "category", msg.Headers[0].Key)
	assert.Equal(t, []byte("Moderate"), msg.Headers[0].Value)
	assert.Equal(t, "dominant_pollutant", msg.Headers[1].Key)
	assert.Equal(t, []byte("pm2_5"), msg.Headers[1].Value)
}

func TestMapOutputToMessage_NoHeaders(t *testing.T) {
	msg := mapOutputToMessage(domain.OutputEvent{Key: []byte("obs-2"), Value: []byte("{}")})
	assert.Empty(t, msg.Headers)
}
