package domain

import (
	"context"
	"time"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/aqi"
)

// RawObservationRecord represents the flat JSON structure produced by the
// collector: one location, one timestamp, one component map of µg/m³ mass
// concentrations.
type RawObservationRecord struct {
	Name       string             `json:"name,omitempty"` // optional place label
	Lat        float64            `json:"lat"`
	Lon        float64            `json:"lon"`
	Dt         int64              `json:"dt"` // provider observation time, unix seconds
	Components map[string]float64 `json:"components"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation is the parsed representation before scoring.
type Observation struct {
	ID         string
	Name       string
	Geo        Geo
	ObservedAt time.Time
	Readings   map[aqi.Pollutant]float64 // raw mass concentrations, µg/m³

	RawPayload []byte
}

// ScoredObservation carries the engine output for one observation, plus
// geocoding enrichment. This is the shape serialized to the sink topic.
type ScoredObservation struct {
	ID         string       `json:"id"`
	Name       string       `json:"name,omitempty"`
	Geo        Geo          `json:"geo"`
	ObservedAt time.Time    `json:"observed_at"`
	Result     aqi.Result   `json:"result"`
	Category   aqi.Category `json:"category"`

	// Geocoding enrichment fields.
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "reverse", "original", "failed"

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
