// Package domain models air quality observations flowing through the ETL
// pipeline.
//
// # Data Source
//
// Observations originate from the OpenWeatherMap air-pollution API
// (https://openweathermap.org/api/air-pollution). The upstream collector
// service polls the API per monitored location on a schedule and publishes
// each response as flat JSON to the Kafka source topic:
//
//	{"name":"Aracaju","lat":-10.9472,"lon":-37.0731,"dt":1714143000,
//	 "components":{"co":201.94,"no":0.02,"no2":0.77,"o3":68.66,
//	               "so2":0.64,"pm2_5":0.5,"pm10":0.54,"nh3":0.12}}
//
// Component values are mass concentrations in µg/m³. The provider reports
// eight components; only the six the EPA index covers (o3, pm2_5, pm10, co,
// so2, no2) pass the parse boundary; "no" and "nh3" have no breakpoint
// table and are dropped. A component missing from the payload is treated as
// missing data, not as a zero concentration; see the aqi package for the
// scoring rules.
//
// Either coordinates or a place name may be absent. The geocoding enrichment
// step fills the gap in whichever direction applies: reverse geocoding when
// coordinates are present, forward geocoding when only a name is.
//
// # ID Generation
//
// Observation IDs are deterministic SHA-256 hashes of lat|lon|dt. This
// enables idempotent upserts downstream (ON CONFLICT DO NOTHING) and replay
// safety without distributed coordination. See [generateID].
package domain
