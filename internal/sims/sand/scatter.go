package sand

import pkgcore "falling-sand/pkg/core"

// Scatter turns each Empty, unlocked cell into m with probability density.
// It returns the number of cells changed.
func Scatter(g *Grid, rng *pkgcore.RNG, m Material, density float64) int {
	if density <= 0 {
		return 0
	}
	changed := 0
	for i := range g.cur {
		c := &g.cur[i]
		if c.Locked || c.Material != Empty {
			continue
		}
		if rng.Chance(density) {
			c.Material = m
			changed++
		}
	}
	return changed
}
