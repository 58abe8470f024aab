package aqi

import "fmt"

// Pollutant identifies one of the six criteria pollutants the index covers.
// The zero value is O3.
type Pollutant int

const (
	O3 Pollutant = iota
	PM25
	PM10
	CO
	SO2
	NO2
)

// Pollutants returns the canonical evaluation order. Aggregation ties are
// broken by position in this slice, so callers iterating over readings must
// walk it rather than ranging over a map.
func Pollutants() []Pollutant {
	return []Pollutant{O3, PM25, PM10, CO, SO2, NO2}
}

// pollutantKeys are the wire names, matching the OpenWeatherMap component keys.
var pollutantKeys = map[Pollutant]string{
	O3:   "o3",
	PM25: "pm2_5",
	PM10: "pm10",
	CO:   "co",
	SO2:  "so2",
	NO2:  "no2",
}

var pollutantDisplayNames = map[Pollutant]string{
	O3:   "Ozone (O₃)",
	PM25: "PM₂.₅",
	PM10: "PM₁₀",
	CO:   "CO",
	SO2:  "SO₂",
	NO2:  "NO₂",
}

// pollutantUnits are the units of each pollutant's breakpoint table.
var pollutantUnits = map[Pollutant]string{
	O3:   "ppm",
	PM25: "µg/m³",
	PM10: "µg/m³",
	CO:   "ppm",
	SO2:  "ppb",
	NO2:  "ppb",
}

// Valid reports whether p is one of the six known pollutants.
func (p Pollutant) Valid() bool {
	_, ok := pollutantKeys[p]
	return ok
}

// String returns the wire name, e.g. "pm2_5".
func (p Pollutant) String() string {
	if key, ok := pollutantKeys[p]; ok {
		return key
	}
	return fmt.Sprintf("pollutant(%d)", int(p))
}

// DisplayName returns the human-readable name, e.g. "PM₂.₅".
func (p Pollutant) DisplayName() string {
	if name, ok := pollutantDisplayNames[p]; ok {
		return name
	}
	return p.String()
}

// Unit returns the unit of the pollutant's breakpoint table: ppm for O3 and
// CO, ppb for SO2 and NO2, µg/m³ for the particulates.
func (p Pollutant) Unit() string {
	return pollutantUnits[p]
}

// MarshalText encodes the pollutant as its wire name, so it can serve as a
// JSON object key.
func (p Pollutant) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &UnknownPollutantError{Kind: p.String()}
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a wire name back into a Pollutant.
func (p *Pollutant) UnmarshalText(text []byte) error {
	parsed, err := ParsePollutant(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePollutant maps a provider component key to a Pollutant. Keys outside
// the closed set (the provider also ships "no" and "nh3") fail with
// UnknownPollutantError.
func ParsePollutant(key string) (Pollutant, error) {
	for p, k := range pollutantKeys {
		if k == key {
			return p, nil
		}
	}
	return 0, &UnknownPollutantError{Kind: key}
}

// UnknownPollutantError reports a pollutant kind outside the closed set of
// six the index covers.
type UnknownPollutantError struct {
	Kind string
}

func (e *UnknownPollutantError) Error() string {
	return fmt.Sprintf("unknown pollutant kind %q", e.Kind)
}
