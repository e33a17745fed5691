// Package advisor turns validated farm conditions into issued recommendations.
// It is the one place the HTTP API, the Kafka pipeline and the CLI share.
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/couchcryptid/crop-advisor-service/internal/observability"
)

// Advisor validates requests, runs the engine and enriches the result.
type Advisor struct {
	engine   *domain.Engine
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an Advisor. Pass a nil geocoder to disable location enrichment.
func New(engine *domain.Engine, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Advisor {
	return &Advisor{
		engine:   engine,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Advise validates c and issues a recommendation. The only error it returns
// is a *domain.ValidationError.
func (a *Advisor) Advise(ctx context.Context, c domain.FarmConditions) (domain.Recommendation, error) {
	start := time.Now()

	if err := c.Validate(); err != nil {
		a.metrics.ValidationErrors.Inc()
		return domain.Recommendation{}, err
	}

	ev := a.engine.Evaluate(c)
	rec := domain.NewRecommendation(c, ev)
	rec = domain.EnrichWithGeocoding(ctx, rec, a.geocoder, a.logger)

	a.metrics.Recommendations.WithLabelValues(soilLabel(c.SoilType), fallbackLabel(ev.Fallback)).Inc()
	if len(rec.Crops) == 0 {
		a.metrics.EmptyRecommendations.Inc()
	}
	a.metrics.AdviseDuration.Observe(time.Since(start).Seconds())

	a.logger.Debug("recommendation issued",
		"recommendation_id", rec.ID,
		"soil_type", c.SoilType,
		"rainfall_bucket", ev.Rainfall,
		"ph_bucket", ev.Ph,
		"temperature_band", ev.Temperature,
		"fallback", fallbackLabel(ev.Fallback),
		"crops", rec.CropNames(),
	)

	return rec, nil
}

// Entries lists the table the engine serves from.
func (a *Advisor) Entries() []domain.TableEntry {
	return a.engine.Table().Entries()
}

// CheckReadiness fails when the loaded table has no leaves.
func (a *Advisor) CheckReadiness(_ context.Context) error {
	if a.engine.Table().Len() == 0 {
		return errors.New("crop table is empty")
	}
	return nil
}

// soilLabel keeps metric cardinality bounded for free-form soil input.
func soilLabel(s domain.SoilType) string {
	if s.IsKnown() {
		return string(s)
	}
	return "unknown"
}

func fallbackLabel(f domain.Fallback) string {
	if f == domain.FallbackNone {
		return "none"
	}
	return string(f)
}
