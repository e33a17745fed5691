package mapbox

import (
	"context"
	"strings"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/couchcryptid/crop-advisor-service/internal/observability"
	gocache "github.com/patrickmn/go-cache"
)

// CachedGeocoder wraps a Geocoder with an in-memory expiring cache keyed by
// the normalized query.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *gocache.Cache
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator whose entries live for ttl.
func NewCachedGeocoder(inner domain.Geocoder, ttl time.Duration, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	key := cacheKey(query)
	if v, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return v.(domain.GeocodingResult), nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.Geocode(ctx, query)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later lookup can succeed.
	if result.FormattedAddress != "" {
		c.cache.SetDefault(key, result)
	}
	return result, nil
}

// Len reports the number of cached locations, including expired ones not yet swept.
func (c *CachedGeocoder) Len() int {
	return c.cache.ItemCount()
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
