// Package aqi converts raw pollutant concentrations into the US EPA Air
// Quality Index using the AirNow piecewise-linear breakpoint method.
//
// # Data Source
//
// Concentrations arrive as mass concentrations in µg/m³, the unit used by the
// OpenWeatherMap air-pollution API that the upstream collector polls. The EPA
// breakpoint tables are defined in volumetric units for gases, so gaseous
// pollutants are converted before lookup:
//
//	ppm or ppb = (µg/m³ × 24.45) / (molar mass × scale)
//
// with molar volume 24.45 L/mol (25 °C, 1 atm) and molar masses O3=48.0,
// CO=28.01, SO2=64.07, NO2=46.01 g/mol. The scale is 1000 for O3 and CO
// (yielding ppm) and 1 for SO2 and NO2 (yielding ppb). Particulates (PM2.5,
// PM10) are already tabulated in µg/m³ and pass through unconverted.
//
// # Truncation
//
// Per the EPA reporting convention, converted concentrations are truncated,
// never rounded, before the breakpoint lookup:
//
//	O3:    3 decimal places (ppm)
//	CO:    1 decimal place  (ppm)
//	PM2.5: 1 decimal place  (µg/m³)
//	SO2, NO2, PM10: whole numbers
//
// Truncation is idempotent: re-normalizing a particulate value is a no-op.
//
// # Sub-index computation
//
// Each pollutant has six ordered, non-overlapping brackets mapping a
// concentration range [Clo, Chi] onto an index range [Ilo, Ihi]:
//
//	AQI = (Ihi − Ilo) / (Chi − Clo) × (C − Clo) + Ilo
//
// rounded half away from zero. Negative concentrations yield 0.
// Concentrations above the highest bracket extrapolate along the top
// bracket's slope rather than clamping; the "Hazardous" category is
// unbounded, so an extreme reading produces an index above 400 instead of a
// silently capped one.
//
// # Aggregation
//
// The overall index for an observation is the maximum sub-index over the
// supplied pollutants, and the dominant pollutant is the one achieving it.
// Ties resolve to the first pollutant in the canonical order O3, PM2.5,
// PM10, CO, SO2, NO2. Pollutants absent from an observation are not scored;
// a missing reading is missing data, not a zero concentration. An
// observation with no readings at all is rejected with [ErrNoReadings], and
// a key outside the closed pollutant set is rejected with
// [UnknownPollutantError]; nothing silently defaults to zero.
//
// All tables are process-wide constants established at init and never
// mutated, so every function here is safe for concurrent use.
package aqi
