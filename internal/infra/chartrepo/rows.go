package chartrepo

import (
	"slices"

	"github.com/yanqian/kundali/internal/domain/natal"
)

// ayanamsaName is stored alongside every person row.
const ayanamsaName = "Lahiri"

// sortPlanets restores chart output order after loading rows.
func sortPlanets(readings []natal.PlanetReading) {
	slices.SortFunc(readings, func(a, b natal.PlanetReading) int {
		return planetOrder(a.Planet) - planetOrder(b.Planet)
	})
}

func planetOrder(p natal.Planet) int {
	if idx := slices.Index(natal.Planets, p); idx >= 0 {
		return idx
	}
	return len(natal.Planets)
}
