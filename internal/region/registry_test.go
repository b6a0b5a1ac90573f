package region

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_NearPopulatedCoast(t *testing.T) {
	reg := Default()

	tests := []struct {
		name     string
		lat, lon float64
		want     string
		near     bool
	}{
		{"miami matches east coast first", 25.8, -80.2, "north-america-east-coast", true},
		{"new orleans in gulf", 29.9, -90.1, "gulf-of-mexico", true},
		{"puerto rico in caribbean", 18.5, -66.0, "caribbean", true},
		{"box edge is inclusive", 45, -70, "north-america-east-coast", true},
		{"open atlantic", 20, -40, "", false},
		{"western pacific", 15, 135, "", false},
		{"just outside caribbean", 9.9, -75, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, near, err := reg.NearPopulatedCoast(tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.near, near)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestNearPopulatedCoast_InvalidCoordinate(t *testing.T) {
	reg := Default()
	for _, c := range [][2]float64{{math.NaN(), 0}, {0, math.Inf(1)}, {91, 0}, {0, -181}} {
		_, near, err := reg.NearPopulatedCoast(c[0], c[1])
		require.Error(t, err)
		assert.False(t, near)
	}
}

func TestBox_AntimeridianCrossing(t *testing.T) {
	r, err := Box("fiji", -20, -15, 175, -178)
	require.NoError(t, err)
	reg := New(r)

	_, near, err := reg.NearPopulatedCoast(-17, 179)
	require.NoError(t, err)
	assert.True(t, near)

	_, near, err = reg.NearPopulatedCoast(-17, -179)
	require.NoError(t, err)
	assert.True(t, near)

	_, near, err = reg.NearPopulatedCoast(-17, 170)
	require.NoError(t, err)
	assert.False(t, near)
}

func TestBox_Invalid(t *testing.T) {
	_, err := Box("", 0, 1, 0, 1)
	require.Error(t, err)
	_, err = Box("x", 10, 5, 0, 1)
	require.Error(t, err)
	_, err = Box("x", 0, 1, 0, 190)
	require.Error(t, err)
}

func TestPolygon(t *testing.T) {
	// Clockwise order with a closing vertex still yields the small triangle.
	r, err := Polygon("bay", [][2]float64{{10, 80}, {20, 85}, {10, 90}, {10, 80}})
	require.NoError(t, err)
	reg := New(r)

	name, near, err := reg.NearPopulatedCoast(13, 85)
	require.NoError(t, err)
	assert.True(t, near)
	assert.Equal(t, "bay", name)

	_, near, err = reg.NearPopulatedCoast(-40, -100)
	require.NoError(t, err)
	assert.False(t, near)
}

func TestPolygon_TooFewVertices(t *testing.T) {
	_, err := Polygon("line", [][2]float64{{0, 0}, {1, 1}, {0, 0}})
	require.Error(t, err)
}

func TestRegion_Bounds(t *testing.T) {
	r, err := Box("gulf", 18, 30, -100, -80)
	require.NoError(t, err)
	minLat, maxLat, minLon, maxLon := r.Bounds()
	assert.InDelta(t, 18, minLat, 1e-9)
	assert.InDelta(t, 30, maxLat, 1e-9)
	assert.InDelta(t, -100, minLon, 1e-9)
	assert.InDelta(t, -80, maxLon, 1e-9)
}

func TestParse(t *testing.T) {
	data := []byte(`
regions:
  - name: gulf
    box: {min_lat: 18, max_lat: 30, min_lon: -100, max_lon: -80}
  - name: bay
    polygon: [[10, 80], [20, 85], [10, 90]]
`)
	reg, err := Parse(data)
	require.NoError(t, err)

	regions := reg.Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, "gulf", regions[0].Name)
	assert.Equal(t, "box", regions[0].Kind)
	assert.Equal(t, "polygon", regions[1].Kind)

	name, near, err := reg.NearPopulatedCoast(25, -90)
	require.NoError(t, err)
	assert.True(t, near)
	assert.Equal(t, "gulf", name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "regions: [\n"},
		{"empty", "regions: []"},
		{"no shape", "regions:\n  - name: a\n"},
		{"both shapes", "regions:\n  - name: a\n    box: {min_lat: 0, max_lat: 1, min_lon: 0, max_lon: 1}\n    polygon: [[0, 0], [1, 0], [0, 1]]\n"},
		{"duplicate", "regions:\n  - name: a\n    box: {min_lat: 0, max_lat: 1, min_lon: 0, max_lon: 1}\n  - name: a\n    box: {min_lat: 0, max_lat: 1, min_lon: 0, max_lon: 1}\n"},
		{"bad box", "regions:\n  - name: a\n    box: {min_lat: 5, max_lat: 1, min_lon: 0, max_lon: 1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions:\n  - name: a\n    box: {min_lat: 0, max_lat: 10, min_lon: 0, max_lon: 10}\n"), 0o600))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	_, near, err := reg.NearPopulatedCoast(5, 5)
	require.NoError(t, err)
	assert.True(t, near)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRegistry_Ready(t *testing.T) {
	require.NoError(t, Default().Ready())
	assert.ErrorContains(t, New().Ready(), "no coastal regions")
}
