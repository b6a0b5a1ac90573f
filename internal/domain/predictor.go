package domain

import "context"

// PositionPredictor estimates the storm position one step ahead. Implementations
// must be safe for concurrent use and return coordinates in valid ranges.
type PositionPredictor interface {
	PredictPosition(state FeatureVector) (lat, lon float64, err error)
}

// IntensityClassifier estimates the intensity category one step ahead along
// with a probability for every category. Probabilities sum to 1 within 1e-6.
// Implementations must be safe for concurrent use.
type IntensityClassifier interface {
	ClassifyIntensity(state FeatureVector) (IntensityCategory, map[IntensityCategory]float64, error)
}

// CoastalRegionRegistry answers whether a point lies near a populated
// coastline and, if so, which monitored region it falls in.
type CoastalRegionRegistry interface {
	NearPopulatedCoast(lat, lon float64) (region string, near bool, err error)
}

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to place details.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
