package advisor

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/couchcryptid/crop-advisor-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	result domain.GeocodingResult
	calls  int
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (domain.GeocodingResult, error) {
	s.calls++
	return s.result, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAdvisor(t *testing.T, table *domain.Table, geocoder domain.Geocoder) (*Advisor, *observability.Metrics) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	metrics := observability.NewMetricsForTesting()
	return New(domain.NewEngine(table), geocoder, discardLogger(), metrics), metrics
}

func TestAdvise_HappyPath(t *testing.T) {
	a, metrics := newTestAdvisor(t, nil, nil)

	rec, err := a.Advise(context.Background(), domain.FarmConditions{
		SoilType: domain.SoilLoamy, TemperatureC: 20, RainfallMM: 500, PhLevel: 6, Location: "Nashik",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Maize", "Sweet Potato", "Tomato"}, rec.CropNames())
	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), rec.IssuedAt)
	assert.Nil(t, rec.Site)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Recommendations.WithLabelValues("loamy", "none")))
	assert.Zero(t, testutil.ToFloat64(metrics.EmptyRecommendations))
}

func TestAdvise_ValidationError(t *testing.T) {
	a, metrics := newTestAdvisor(t, nil, nil)

	_, err := a.Advise(context.Background(), domain.FarmConditions{SoilType: domain.SoilClay, TemperatureC: 60, Location: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConditions)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ValidationErrors))
}

func TestAdvise_EmptyAndUnknownSoilMetrics(t *testing.T) {
	a, metrics := newTestAdvisor(t, nil, nil)
	ctx := context.Background()

	rec, err := a.Advise(ctx, domain.FarmConditions{
		SoilType: domain.SoilSandy, TemperatureC: 40, RainfallMM: 1200, PhLevel: 7, Location: "Jaisalmer",
	})
	require.NoError(t, err)
	assert.Empty(t, rec.Crops)

	rec, err = a.Advise(ctx, domain.FarmConditions{
		SoilType: "volcanic", TemperatureC: 40, RainfallMM: 1200, PhLevel: 7, Location: "Jaisalmer",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wheat", "Rice", "Maize"}, rec.CropNames())
	assert.Equal(t, domain.FallbackCategory, rec.Fallback)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EmptyRecommendations))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Recommendations.WithLabelValues("unknown", "category")))
}

func TestAdvise_GeocodesLocation(t *testing.T) {
	geo := &stubGeocoder{result: domain.GeocodingResult{Lat: 20.0, Lon: 73.8, PlaceName: "Nashik"}}
	a, _ := newTestAdvisor(t, nil, geo)

	rec, err := a.Advise(context.Background(), domain.FarmConditions{
		SoilType: domain.SoilClay, TemperatureC: 25, RainfallMM: 800, PhLevel: 7, Location: "Nashik",
	})

	require.NoError(t, err)
	require.NotNil(t, rec.Site)
	assert.Equal(t, domain.GeoSourceForward, rec.Site.Source)
	assert.Equal(t, 1, geo.calls)
}

func TestAdvise_InvalidRequestSkipsGeocoder(t *testing.T) {
	geo := &stubGeocoder{}
	a, _ := newTestAdvisor(t, nil, geo)

	_, err := a.Advise(context.Background(), domain.FarmConditions{SoilType: domain.SoilClay})

	require.Error(t, err)
	assert.Zero(t, geo.calls)
}

func TestCheckReadiness(t *testing.T) {
	a, _ := newTestAdvisor(t, nil, nil)
	assert.NoError(t, a.CheckReadiness(context.Background()))
	assert.Len(t, a.Entries(), 36)

	empty, err := domain.NewTableBuilder().AddSoil(domain.SoilClay).Build()
	require.NoError(t, err)
	b, _ := newTestAdvisor(t, empty, nil)
	assert.Error(t, b.CheckReadiness(context.Background()))
}
