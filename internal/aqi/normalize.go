package aqi

import "math"

// molarVolume is the volume in liters occupied by one mole of an ideal gas
// at the EPA reference conditions of 25 °C and 1 atm.
const molarVolume = 24.45

// molarMasses in g/mol for the gaseous pollutants.
var molarMasses = map[Pollutant]float64{
	O3:  48.0,
	CO:  28.01,
	SO2: 64.07,
	NO2: 46.01,
}

// Normalize converts a raw mass concentration in µg/m³ into the unit of the
// pollutant's breakpoint table and truncates it to the precision the EPA
// reporting convention mandates. Particulates pass through unconverted.
// Negative inputs are not an error; downstream interpolation scores them 0.
func Normalize(p Pollutant, ugm3 float64) (float64, error) {
	switch p {
	case PM25:
		return truncate(ugm3, 1), nil
	case PM10:
		return truncate(ugm3, 0), nil
	case O3:
		return truncate(ugm3*molarVolume/(molarMasses[O3]*1000), 3), nil
	case CO:
		return truncate(ugm3*molarVolume/(molarMasses[CO]*1000), 1), nil
	case SO2:
		return truncate(ugm3*molarVolume/molarMasses[SO2], 0), nil
	case NO2:
		return truncate(ugm3*molarVolume/molarMasses[NO2], 0), nil
	default:
		return 0, &UnknownPollutantError{Kind: p.String()}
	}
}

// truncate drops digits past the given decimal place, toward zero, never
// rounding to nearest.
func truncate(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Trunc(v*shift) / shift
}
