package domain

import (
	"context"
	"log/slog"
	"strings"
)

// Site.Source values.
const (
	GeoSourceForward  = "forward"
	GeoSourceOriginal = "original"
	GeoSourceFailed   = "failed"
)

// EnrichWithGeocoding attaches a Site to the recommendation. With a nil
// geocoder the record is returned unchanged; a failed lookup is recorded in
// Site.Source and never fails the recommendation.
func EnrichWithGeocoding(ctx context.Context, rec Recommendation, geocoder Geocoder, logger *slog.Logger) Recommendation {
	if geocoder == nil {
		return rec
	}

	query := strings.TrimSpace(rec.Conditions.Location)
	if query == "" {
		rec.Site = &Site{Source: GeoSourceOriginal}
		return rec
	}

	result, err := geocoder.Geocode(ctx, query)
	if err != nil {
		logger.Warn("geocoding failed",
			"recommendation_id", rec.ID,
			"location", query,
			"error", err,
		)
		rec.Site = &Site{Source: GeoSourceFailed}
		return rec
	}

	if result.Lat == 0 && result.Lon == 0 {
		rec.Site = &Site{Source: GeoSourceOriginal}
		return rec
	}

	rec.Site = &Site{
		Lat:              result.Lat,
		Lon:              result.Lon,
		FormattedAddress: result.FormattedAddress,
		PlaceName:        result.PlaceName,
		Confidence:       result.Confidence,
		Source:           GeoSourceForward,
	}
	return rec
}
