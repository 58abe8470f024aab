package pipeline

import (
	"context"
	"log/slog"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/observability"
)

// AQITransformer implements Transformer: it parses a raw observation, runs
// the AQI engine over it, applies optional geocoding enrichment, and
// serializes the result for the sink topic.
type AQITransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates an AQITransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *AQITransformer {
	return &AQITransformer{
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *AQITransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	obs, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	scored, err := domain.ScoreObservation(obs)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.ObservationsScored.WithLabelValues(scored.Category.Level).Inc()
	t.metrics.DominantPollutant.WithLabelValues(scored.Result.Dominant.String()).Inc()
	t.metrics.OverallAQI.Observe(float64(scored.Result.OverallAQI))

	scored = domain.EnrichWithGeocoding(ctx, scored, t.geocoder, t.logger)

	return domain.SerializeScoredObservation(scored)
}
