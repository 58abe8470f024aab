package aqi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_GaseousConversion(t *testing.T) {
	tests := []struct {
		name      string
		pollutant Pollutant
		ugm3      float64
		expected  float64
	}{
		// (108 × 24.45) / (48.0 × 1000) = 0.0550125 → 0.055 ppm
		{"ozone to ppm", O3, 108, 0.055},
		{"ozone truncates third decimal", O3, 100, 0.050},
		// (1000 × 24.45) / (28.01 × 1000) = 0.8729 → 0.8 ppm
		{"carbon monoxide to ppm", CO, 1000, 0.8},
		{"carbon monoxide larger reading", CO, 4000, 3.4},
		// (100 × 24.45) / 64.07 = 38.16 → 38 ppb
		{"sulfur dioxide to ppb", SO2, 100, 38},
		// (100 × 24.45) / 46.01 = 53.14 → 53 ppb
		{"nitrogen dioxide to ppb", NO2, 100, 53},
		{"zero stays zero", O3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.pollutant, tt.ugm3)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestNormalize_ParticulateTruncation(t *testing.T) {
	tests := []struct {
		name      string
		pollutant Pollutant
		ugm3      float64
		expected  float64
	}{
		{"pm2.5 keeps one decimal", PM25, 35.49, 35.4},
		{"pm2.5 exact value unchanged", PM25, 35.4, 35.4},
		{"pm10 truncates to integer", PM10, 54.9, 54},
		{"pm10 integer unchanged", PM10, 154, 154},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.pollutant, tt.ugm3)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// Truncation is idempotent: re-normalizing a particulate value that
	// already satisfies its precision rule must not change it.
	for _, raw := range []float64{0, 9.0, 35.4, 55.5, 225.5, 500.1} {
		once, err := Normalize(PM25, raw)
		require.NoError(t, err)
		twice, err := Normalize(PM25, once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "raw %v", raw)
	}
}

func TestNormalize_NegativePassesThrough(t *testing.T) {
	// Negative readings are accepted; interpolation clamps them to AQI 0.
	got, err := Normalize(PM25, -5)
	require.NoError(t, err)
	assert.Negative(t, got)
}

func TestNormalize_UnknownPollutant(t *testing.T) {
	_, err := Normalize(Pollutant(99), 10)
	require.Error(t, err)

	var unknownErr *UnknownPollutantError
	require.ErrorAs(t, err, &unknownErr)
	assert.Contains(t, unknownErr.Error(), "pollutant(99)")
}
