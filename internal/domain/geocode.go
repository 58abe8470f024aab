package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding attempts to enrich a scored observation with geocoding
// data. If geocoder is nil or geocoding fails, the observation is returned
// with GeoSource set accordingly; a failed lookup never blocks publication.
func EnrichWithGeocoding(ctx context.Context, obs ScoredObservation, geocoder Geocoder, logger *slog.Logger) ScoredObservation {
	if geocoder == nil {
		return obs
	}

	hasCoords := obs.Geo.Lat != 0 || obs.Geo.Lon != 0
	hasName := obs.Name != ""

	// Reverse geocode: coordinates → place details. Collector payloads
	// normally carry coordinates, so this is the common path.
	if hasCoords {
		result, err := geocoder.ReverseGeocode(ctx, obs.Geo.Lat, obs.Geo.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"observation_id", obs.ID,
				"lat", obs.Geo.Lat,
				"lon", obs.Geo.Lon,
				"error", err,
			)
			obs.GeoSource = "failed"
			return obs
		}
		if result.PlaceName != "" {
			obs.FormattedAddress = result.FormattedAddress
			obs.PlaceName = result.PlaceName
			obs.GeoConfidence = result.Confidence
			obs.GeoSource = "reverse"
			return obs
		}
		obs.GeoSource = "original"
		return obs
	}

	// Forward geocode: place name → coordinates, for collectors that poll
	// by city name.
	if hasName {
		result, err := geocoder.ForwardGeocode(ctx, obs.Name, "")
		if err != nil {
			logger.Warn("forward geocoding failed",
				"observation_id", obs.ID,
				"name", obs.Name,
				"error", err,
			)
			obs.GeoSource = "failed"
			return obs
		}
		if result.Lat != 0 || result.Lon != 0 {
			obs.Geo.Lat = result.Lat
			obs.Geo.Lon = result.Lon
			obs.FormattedAddress = result.FormattedAddress
			obs.PlaceName = result.PlaceName
			obs.GeoConfidence = result.Confidence
			obs.GeoSource = "forward"
			return obs
		}
		obs.GeoSource = "original"
		return obs
	}

	obs.GeoSource = "original"
	return obs
}
