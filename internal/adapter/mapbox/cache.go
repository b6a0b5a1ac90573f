package mapbox

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory cache keyed on
// coordinates rounded to two decimals (about 1 km), so neighbouring forecast
// points of repeated runs share lookups.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *ristretto.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator holding up to maxEntries results.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) (*CachedGeocoder, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("geocode cache size must be positive, got %d", maxEntries)
	}
	// Every entry is set with cost 1 and internal cost is ignored, so MaxCost
	// is an entry count.
	cache, err := ristretto.NewCache(&ristretto.Config[string, domain.GeocodingResult]{
		NumCounters:        int64(maxEntries) * 10,
		MaxCost:            int64(maxEntries),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}, nil
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := cacheKey(lat, lon)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Only cache non-empty results so transient "not found" responses can be retried.
	if result.FormattedAddress != "" {
		c.cache.Set(key, result, 1)
		c.cache.Wait()
	}
	return result, nil
}

// Close releases the cache's background goroutines.
func (c *CachedGeocoder) Close() {
	c.cache.Close()
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("rev:%.2f,%.2f", lat, lon)
}
