// Package geomath provides great-circle geometry and circular statistics for
// storm tracks. Angles are in degrees unless a name says otherwise.
package geomath

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean sphere radius used for all track distances.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(latA, lonA, latB, lonB float64) float64 {
	a := s2.LatLngFromDegrees(latA, lonA)
	b := s2.LatLngFromDegrees(latB, lonB)
	return a.Distance(b).Radians() * EarthRadiusKm
}

// BearingDeg returns the initial bearing from A to B in [0, 360), where 0 is
// north and 90 is east. Identical points have no direction; 0 is returned.
func BearingDeg(latA, lonA, latB, lonB float64) float64 {
	if latA == latB && lonA == lonB {
		return 0
	}

	lat1 := latA * math.Pi / 180
	lat2 := latB * math.Pi / 180
	dLon := (lonB - lonA) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeDeg(math.Atan2(y, x) * 180 / math.Pi)
}

// NormalizeDeg maps any finite angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod(-1e-15, 360) + 360 rounds to 360.
	if d >= 360 {
		d = 0
	}
	return d
}

// ClampLat clips a latitude into [-90, 90].
func ClampLat(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// WrapLon wraps a longitude into [-180, 180].
func WrapLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	w := math.Mod(lon+180, 360)
	if w < 0 {
		w += 360
	}
	return w - 180
}
