// Package region implements domain.CoastalRegionRegistry over named s2
// rectangles and polygons.
package region

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Region is a named area of populated coastline.
type Region struct {
	Name  string
	Kind  string // "box" or "polygon"
	Shape s2.Region
}

// Bounds returns the region's bounding box in degrees.
func (r Region) Bounds() (minLat, maxLat, minLon, maxLon float64) {
	b := r.Shape.RectBound()
	return s1.Angle(b.Lat.Lo).Degrees(), s1.Angle(b.Lat.Hi).Degrees(),
		s1.Angle(b.Lng.Lo).Degrees(), s1.Angle(b.Lng.Hi).Degrees()
}

// Box returns a closed latitude/longitude rectangle. A minLon greater than
// maxLon describes a box crossing the antimeridian.
func Box(name string, minLat, maxLat, minLon, maxLon float64) (Region, error) {
	if name == "" {
		return Region{}, errors.New("region name is required")
	}
	if minLat > maxLat || minLat < -90 || maxLat > 90 {
		return Region{}, fmt.Errorf("region %s: invalid latitude range [%v, %v]", name, minLat, maxLat)
	}
	if math.Abs(minLon) > 180 || math.Abs(maxLon) > 180 {
		return Region{}, fmt.Errorf("region %s: invalid longitude range [%v, %v]", name, minLon, maxLon)
	}
	rect := s2.Rect{
		Lat: r1.Interval{Lo: (s1.Angle(minLat) * s1.Degree).Radians(), Hi: (s1.Angle(maxLat) * s1.Degree).Radians()},
		Lng: s1.IntervalFromEndpoints((s1.Angle(minLon) * s1.Degree).Radians(), (s1.Angle(maxLon) * s1.Degree).Radians()),
	}
	return Region{Name: name, Kind: "box", Shape: rect}, nil
}

// Polygon returns a simple polygon from [lat, lon] vertices. Vertex order does
// not matter; the loop is normalized to enclose the smaller area. A repeated
// closing vertex is dropped.
func Polygon(name string, vertices [][2]float64) (Region, error) {
	if name == "" {
		return Region{}, errors.New("region name is required")
	}
	if n := len(vertices); n > 1 && vertices[0] == vertices[n-1] {
		vertices = vertices[:n-1]
	}
	if len(vertices) < 3 {
		return Region{}, fmt.Errorf("region %s: polygon needs at least 3 vertices, got %d", name, len(vertices))
	}
	points := make([]s2.Point, len(vertices))
	for i, v := range vertices {
		if math.Abs(v[0]) > 90 || math.Abs(v[1]) > 180 {
			return Region{}, fmt.Errorf("region %s: vertex %d out of range: %v", name, i, v)
		}
		points[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(v[0], v[1]))
	}
	loop := s2.LoopFromPoints(points)
	loop.Normalize()
	return Region{Name: name, Kind: "polygon", Shape: loop}, nil
}

// Registry is an ordered set of regions. The first region containing a point
// wins. A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	regions []Region
}

// New returns a registry over the given regions.
func New(regions ...Region) *Registry {
	return &Registry{regions: append([]Region(nil), regions...)}
}

// Default returns the built-in monitored coastlines: the North American east
// coast, the Gulf of Mexico and the Caribbean.
func Default() *Registry {
	return New(
		mustBox("north-america-east-coast", 25, 45, -85, -70),
		mustBox("gulf-of-mexico", 18, 30, -100, -80),
		mustBox("caribbean", 10, 25, -90, -60),
	)
}

func mustBox(name string, minLat, maxLat, minLon, maxLon float64) Region {
	r, err := Box(name, minLat, maxLat, minLon, maxLon)
	if err != nil {
		panic(err)
	}
	return r
}

// Regions returns a copy of the registered regions in match order.
func (r *Registry) Regions() []Region {
	return append([]Region(nil), r.regions...)
}

// Ready reports an error when the registry has no regions, in which case no
// forecast point can raise a coastal threat.
func (r *Registry) Ready() error {
	if len(r.regions) == 0 {
		return errors.New("no coastal regions loaded")
	}
	return nil
}

// NearPopulatedCoast implements domain.CoastalRegionRegistry.
func (r *Registry) NearPopulatedCoast(lat, lon float64) (string, bool, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return "", false, fmt.Errorf("coordinate out of range: (%v, %v)", lat, lon)
	}
	ll := s2.LatLngFromDegrees(lat, lon)
	p := s2.PointFromLatLng(ll)
	for _, region := range r.regions {
		var inside bool
		if rect, ok := region.Shape.(s2.Rect); ok {
			inside = rect.ContainsLatLng(ll)
		} else {
			inside = region.Shape.ContainsPoint(p)
		}
		if inside {
			return region.Name, true, nil
		}
	}
	return "", false, nil
}
