package aqi

import "errors"

// ErrNoReadings rejects an observation with no pollutant readings at all;
// the maximum over an empty set is undefined.
var ErrNoReadings = errors.New("observation contains no pollutant readings")

// SubIndex is one pollutant's contribution to the overall index.
type SubIndex struct {
	Pollutant     Pollutant `json:"pollutant"`
	Concentration float64   `json:"concentration"` // normalized, in Pollutant.Unit()
	AQI           int       `json:"aqi"`
}

// Result is the aggregated index for one observation.
type Result struct {
	OverallAQI   int                    `json:"overall_aqi"`
	Dominant     Pollutant              `json:"dominant_pollutant"`
	PerPollutant map[Pollutant]SubIndex `json:"per_pollutant"`
}

// Aggregate normalizes and scores every supplied reading (raw µg/m³ keyed by
// pollutant) and reduces the sub-indices to a single overall AQI. The
// overall index is the maximum sub-index; the dominant pollutant is the
// first one achieving it in canonical order. Pollutants absent from the map
// are simply not scored.
func Aggregate(readings map[Pollutant]float64) (Result, error) {
	if len(readings) == 0 {
		return Result{}, ErrNoReadings
	}
	for p := range readings {
		if !p.Valid() {
			return Result{}, &UnknownPollutantError{Kind: p.String()}
		}
	}

	per := make(map[Pollutant]SubIndex, len(readings))
	overall := -1
	dominant := O3

	// Walk the canonical order, not the map, so ties resolve deterministically.
	for _, p := range Pollutants() {
		raw, ok := readings[p]
		if !ok {
			continue
		}
		concentration, err := Normalize(p, raw)
		if err != nil {
			return Result{}, err
		}
		sub, err := Interpolate(p, concentration)
		if err != nil {
			return Result{}, err
		}
		per[p] = SubIndex{Pollutant: p, Concentration: concentration, AQI: sub}
		if sub > overall {
			overall = sub
			dominant = p
		}
	}

	return Result{OverallAQI: overall, Dominant: dominant, PerPollutant: per}, nil
}
