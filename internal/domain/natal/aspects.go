package natal

import "slices"

// Aspect lists the houses a planet casts its full glance on and the bodies
// occupying them.
type Aspect struct {
	Planet  Planet   `json:"planet"`
	Houses  []int    `json:"houses"`
	Targets []Planet `json:"targets"`
}

// aspectDistances counts houses inclusively from the planet's own house.
var aspectDistances = map[Planet][]int{
	Sun:     {7},
	Moon:    {7},
	Mercury: {7},
	Venus:   {7},
	Mars:    {4, 7, 8},
	Jupiter: {5, 7, 9},
	Saturn:  {3, 7, 10},
	Rahu:    {5, 7, 9},
	Ketu:    {5, 7, 9},
}

// Aspects returns the whole-sign aspects of every body in chart, in chart order.
func Aspects(chart ChartResult) []Aspect {
	occupants := make(map[int][]Planet, 12)
	for _, reading := range chart.Planets {
		occupants[reading.House] = append(occupants[reading.House], reading.Planet)
	}

	out := make([]Aspect, 0, len(chart.Planets))
	for _, reading := range chart.Planets {
		aspect := Aspect{Planet: reading.Planet, Houses: []int{}, Targets: []Planet{}}
		for _, distance := range aspectDistances[reading.Planet] {
			aspect.Houses = append(aspect.Houses, (reading.House-1+distance-1)%12+1)
		}
		slices.Sort(aspect.Houses)
		for _, house := range aspect.Houses {
			for _, target := range occupants[house] {
				if target != reading.Planet {
					aspect.Targets = append(aspect.Targets, target)
				}
			}
		}
		out = append(out, aspect)
	}
	return out
}
