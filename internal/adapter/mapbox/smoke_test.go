//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return NewClient(token, 10*time.Second, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_Geocode(t *testing.T) {
	c := smokeClient(t)

	result, err := c.Geocode(context.Background(), "Nashik, Maharashtra")
	require.NoError(t, err)

	assert.InDelta(t, 20.0, result.Lat, 0.3, "lat should be near Nashik")
	assert.InDelta(t, 73.8, result.Lon, 0.3, "lon should be near Nashik")
	assert.Contains(t, result.FormattedAddress, "Nashik")
	assert.Greater(t, result.Confidence, 0.5)
}

func TestSmoke_GeocodeUnknown(t *testing.T) {
	c := smokeClient(t)

	result, err := c.Geocode(context.Background(), "zzqqxx farm nowhere 000")
	require.NoError(t, err)
	assert.Empty(t, result.FormattedAddress)
}
