package region

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a region registry:
//
//	regions:
//	  - name: gulf-of-mexico
//	    box: {min_lat: 18, max_lat: 30, min_lon: -100, max_lon: -80}
//	  - name: bay-of-bengal
//	    polygon: [[22, 86], [22, 92], [15, 82], [15, 80]]
type File struct {
	Regions []FileRegion `yaml:"regions"`
}

// FileRegion holds exactly one of Box or Polygon.
type FileRegion struct {
	Name    string       `yaml:"name"`
	Box     *FileBox     `yaml:"box,omitempty"`
	Polygon [][2]float64 `yaml:"polygon,omitempty"`
}

// FileBox is a latitude/longitude rectangle in degrees.
type FileBox struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse region file: %w", err)
	}
	if len(f.Regions) == 0 {
		return nil, errors.New("region file defines no regions")
	}

	seen := make(map[string]bool, len(f.Regions))
	regions := make([]Region, 0, len(f.Regions))
	for i, fr := range f.Regions {
		if seen[fr.Name] {
			return nil, fmt.Errorf("region %d: duplicate name %q", i, fr.Name)
		}
		seen[fr.Name] = true

		var (
			r   Region
			err error
		)
		switch {
		case fr.Box != nil && fr.Polygon != nil:
			return nil, fmt.Errorf("region %q: box and polygon are mutually exclusive", fr.Name)
		case fr.Box != nil:
			r, err = Box(fr.Name, fr.Box.MinLat, fr.Box.MaxLat, fr.Box.MinLon, fr.Box.MaxLon)
		case fr.Polygon != nil:
			r, err = Polygon(fr.Name, fr.Polygon)
		default:
			return nil, fmt.Errorf("region %q: one of box or polygon is required", fr.Name)
		}
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return New(regions...), nil
}

// LoadFile reads and parses a YAML region file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region file: %w", err)
	}
	return Parse(data)
}
