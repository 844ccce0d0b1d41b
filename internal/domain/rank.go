package domain

import "sort"

// PrimaryRadiusKM is the default search radius around a geocoded point.
const PrimaryRadiusKM = 100

// fallbackCount is how many closest occurrences to return when nothing falls
// inside the primary radius.
const fallbackCount = 3

// Nearby filters occurrences to those within radiusKM kilometres of origin,
// preserving their input order. When the radius captures nothing, it instead
// returns the fallbackCount closest occurrences sorted ascending by distance,
// ties keeping input order. An empty input yields an empty result. The input
// slice is never reordered or mutated.
func Nearby(origin Coordinate, occs []Occurrence, radiusKM float64) []Occurrence {
	if len(occs) == 0 {
		return nil
	}

	dists := make([]float64, len(occs))
	var within []Occurrence
	for i, occ := range occs {
		dists[i] = Distance(origin, occ.Event.Coord)
		if dists[i] <= radiusKM {
			within = append(within, occ)
		}
	}
	if len(within) > 0 {
		return within
	}

	// Nothing in range: fall back to the closest few, nearest first.
	idx := make([]int, len(occs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dists[idx[a]] < dists[idx[b]]
	})
	n := fallbackCount
	if n > len(idx) {
		n = len(idx)
	}
	closest := make([]Occurrence, n)
	for i := 0; i < n; i++ {
		closest[i] = occs[idx[i]]
	}
	return closest
}
