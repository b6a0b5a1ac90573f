package domain

// IntensityCategory is one of the seven ordered storm intensity levels.
type IntensityCategory string

const (
	TropicalDepression IntensityCategory = "tropical_depression"
	TropicalStorm      IntensityCategory = "tropical_storm"
	Category1          IntensityCategory = "category_1"
	Category2          IntensityCategory = "category_2"
	Category3          IntensityCategory = "category_3"
	Category4          IntensityCategory = "category_4"
	Category5          IntensityCategory = "category_5"
)

// IntensityCategories lists every category from weakest to strongest.
var IntensityCategories = []IntensityCategory{
	TropicalDepression,
	TropicalStorm,
	Category1,
	Category2,
	Category3,
	Category4,
	Category5,
}

// Ordinal returns 1 for tropical_depression through 7 for category_5, or 0
// for an unknown value.
func (c IntensityCategory) Ordinal() int {
	for i, known := range IntensityCategories {
		if c == known {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether c is one of the seven known categories.
func (c IntensityCategory) Valid() bool {
	return c.Ordinal() > 0
}

// CategoryForWind maps a 1-minute sustained wind in km/h to its category.
func CategoryForWind(kmh float64) IntensityCategory {
	switch {
	case kmh < 63:
		return TropicalDepression
	case kmh < 119:
		return TropicalStorm
	case kmh < 154:
		return Category1
	case kmh < 178:
		return Category2
	case kmh < 209:
		return Category3
	case kmh < 252:
		return Category4
	default:
		return Category5
	}
}
