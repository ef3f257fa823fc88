package natal

import "slices"

type placement struct {
	planet Planet
	sign   Sign
	degree float64
}

type dignityRule struct {
	dignity Dignity
	match   func(p placement) bool
}

// dignityRules are evaluated in order; the first match wins.
var dignityRules = []dignityRule{
	{DignityExalted, func(p placement) bool {
		sign, ok := exaltation[p.planet]
		return ok && sign == p.sign
	}},
	{DignityDebilitated, func(p placement) bool {
		sign, ok := debilitation[p.planet]
		return ok && sign == p.sign
	}},
	{DignityMoolatrikona, func(p placement) bool {
		r, ok := moolatrikona[p.planet]
		return ok && r.sign == p.sign && p.degree >= r.from && p.degree <= r.to
	}},
	{DignityOwn, func(p placement) bool {
		return slices.Contains(ownership[p.planet], p.sign) || SignRuler(p.sign) == p.planet
	}},
	{DignityFriendly, func(p placement) bool {
		return slices.Contains(friends[p.planet], SignRuler(p.sign))
	}},
	{DignityEnemy, func(p placement) bool {
		return slices.Contains(enemies[p.planet], SignRuler(p.sign))
	}},
}

// ClassifyDignity returns the dignity of planet placed at degree within sign.
func ClassifyDignity(planet Planet, sign Sign, degree float64) Dignity {
	p := placement{planet: planet, sign: sign, degree: degree}
	for _, rule := range dignityRules {
		if rule.match(p) {
			return rule.dignity
		}
	}
	return DignityNeutral
}
