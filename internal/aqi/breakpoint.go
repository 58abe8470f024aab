package aqi

import "math"

// breakpoint maps one inclusive concentration bracket [concLo, concHi] onto
// one AQI sub-range [aqiLo, aqiHi].
type breakpoint struct {
	concLo, concHi float64
	aqiLo, aqiHi   int
}

// breakpoints holds the AirNow bracket tables, six ascending, non-overlapping
// brackets per pollutant covering index 0–400. Concentrations are in each
// pollutant's table unit (see Pollutant.Unit). These constants come from the
// EPA Technical Assistance Document for the Reporting of Daily Air Quality
// and must not be altered.
var breakpoints = map[Pollutant][]breakpoint{
	O3: {
		{0.000, 0.054, 0, 50},
		{0.055, 0.070, 51, 100},
		{0.071, 0.085, 101, 150},
		{0.086, 0.105, 151, 200},
		{0.106, 0.200, 201, 300},
		{0.201, 0.404, 301, 400},
	},
	PM25: {
		{0.0, 9.0, 0, 50},
		{9.1, 35.4, 51, 100},
		{35.5, 55.4, 101, 150},
		{55.5, 125.4, 151, 200},
		{125.5, 225.4, 201, 300},
		{225.5, 325.4, 301, 400},
	},
	PM10: {
		{0, 54, 0, 50},
		{55, 154, 51, 100},
		{155, 254, 101, 150},
		{255, 354, 151, 200},
		{355, 424, 201, 300},
		{425, 504, 301, 400},
	},
	CO: {
		{0.0, 4.4, 0, 50},
		{4.5, 9.4, 51, 100},
		{9.5, 12.4, 101, 150},
		{12.5, 15.4, 151, 200},
		{15.5, 30.4, 201, 300},
		{30.5, 40.4, 301, 400},
	},
	SO2: {
		{0, 35, 0, 50},
		{36, 75, 51, 100},
		{76, 185, 101, 150},
		{186, 304, 151, 200},
		{305, 604, 201, 300},
		{605, 804, 301, 400},
	},
	NO2: {
		{0, 53, 0, 50},
		{54, 100, 51, 100},
		{101, 360, 101, 150},
		{361, 649, 151, 200},
		{650, 1249, 201, 300},
		{1250, 1649, 301, 400},
	},
}

// Interpolate maps a normalized concentration onto the pollutant's AQI
// sub-index. Negative concentrations score 0. Concentrations above the
// highest bracket extrapolate along the top bracket's slope instead of
// clamping.
func Interpolate(p Pollutant, concentration float64) (int, error) {
	table, ok := breakpoints[p]
	if !ok {
		return 0, &UnknownPollutantError{Kind: p.String()}
	}
	if concentration < 0 {
		return 0, nil
	}

	for _, bp := range table {
		if concentration >= bp.concLo && concentration <= bp.concHi {
			return interpolateBracket(bp, concentration), nil
		}
	}

	if top := table[len(table)-1]; concentration > top.concHi {
		return interpolateBracket(top, concentration), nil
	}

	// Non-negative but below the lowest bracket. Unreachable with the tables
	// above, which all start at 0.
	return 0, nil
}

// interpolateBracket applies the linear AQI equation within one bracket,
// rounding half away from zero (the AirNow reporting convention). A
// degenerate bracket returns its lower index exactly.
func interpolateBracket(bp breakpoint, concentration float64) int {
	if bp.concHi == bp.concLo {
		return bp.aqiLo
	}
	slope := float64(bp.aqiHi-bp.aqiLo) / (bp.concHi - bp.concLo)
	return int(math.Round(slope*(concentration-bp.concLo) + float64(bp.aqiLo)))
}
