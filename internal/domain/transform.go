package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/aqi"
)

// ParseRawEvent deserializes a RawEvent's value into an Observation.
// It expects the flat JSON produced by the collector service. Provider
// components without a breakpoint table ("no", "nh3") are dropped here so
// the engine only ever sees the closed pollutant set.
func ParseRawEvent(raw RawEvent) (Observation, error) {
	var rec RawObservationRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw event: %w", err)
	}

	readings := make(map[aqi.Pollutant]float64, len(rec.Components))
	for key, value := range rec.Components {
		p, err := aqi.ParsePollutant(key)
		if err != nil {
			var unknownErr *aqi.UnknownPollutantError
			if errors.As(err, &unknownErr) {
				continue
			}
			return Observation{}, err
		}
		readings[p] = value
	}

	observedAt := raw.Timestamp
	if rec.Dt > 0 {
		observedAt = time.Unix(rec.Dt, 0).UTC()
	}

	return Observation{
		ID:         generateID(rec.Lat, rec.Lon, rec.Dt),
		Name:       rec.Name,
		Geo:        Geo{Lat: rec.Lat, Lon: rec.Lon},
		ObservedAt: observedAt,
		Readings:   readings,
		RawPayload: raw.Value,
	}, nil
}

// generateID produces a deterministic ID from the observation's key fields.
// Reprocessing the same raw message yields the same ID, so downstream
// consumers can upsert idempotently.
func generateID(lat, lon float64, dt int64) string {
	input := fmt.Sprintf("%.4f|%.4f|%d", lat, lon, dt)
	hash := sha256.Sum256([]byte(input))
	return "obs-" + hex.EncodeToString(hash[:8])
}

// ScoreObservation runs the AQI engine over an observation's readings:
// normalization, per-pollutant interpolation, worst-pollutant aggregation,
// and category lookup. An observation with no usable readings fails with
// aqi.ErrNoReadings wrapped in context.
func ScoreObservation(obs Observation) (ScoredObservation, error) {
	result, err := aqi.Aggregate(obs.Readings)
	if err != nil {
		return ScoredObservation{}, fmt.Errorf("score observation %s: %w", obs.ID, err)
	}

	return ScoredObservation{
		ID:          obs.ID,
		Name:        obs.Name,
		Geo:         obs.Geo,
		ObservedAt:  obs.ObservedAt,
		Result:      result,
		Category:    aqi.LookupCategory(result.OverallAQI),
		RawPayload:  obs.RawPayload,
		ProcessedAt: clock.Now(),
	}, nil
}

// SerializeScoredObservation marshals a scored observation into an
// OutputEvent keyed by observation ID. Headers carry the dominant pollutant
// and category level so consumers can route without deserializing the body.
func SerializeScoredObservation(obs ScoredObservation) (OutputEvent, error) {
	data, err := json.Marshal(obs)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize scored observation: %w", err)
	}
	return OutputEvent{
		Key:   []byte(obs.ID),
		Value: data,
		Headers: map[string]string{
			"dominant_pollutant": obs.Result.Dominant.String(),
			"category":           obs.Category.Level,
		},
	}, nil
}
