package domain

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds in-flight reverse geocoding calls per forecast.
const maxConcurrentLookups = 4

// EnrichThreatsWithPlaces attaches the nearest named place to each coastal
// threat record. A nil geocoder returns the records unchanged; a failed lookup
// is logged and leaves that record without a place (graceful degradation).
func EnrichThreatsWithPlaces(ctx context.Context, threats []CoastalThreatRecord, geocoder Geocoder, logger *slog.Logger) []CoastalThreatRecord {
	if geocoder == nil || len(threats) == 0 {
		return threats
	}

	out := make([]CoastalThreatRecord, len(threats))
	copy(out, threats)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i := range out {
		g.Go(func() error {
			loc := out[i].Location
			result, err := geocoder.ReverseGeocode(gctx, loc.Lat, loc.Lon)
			if err != nil {
				logger.Warn("reverse geocoding failed",
					"forecast_hour", out[i].ForecastHour,
					"lat", loc.Lat,
					"lon", loc.Lon,
					"error", err,
				)
				return nil
			}
			out[i].PlaceName = result.PlaceName
			out[i].FormattedAddress = result.FormattedAddress
			return nil
		})
	}
	_ = g.Wait() // lookups never fail the group
	return out
}
