package calculator

import "airdist/internal/models"

// Pairs enumerates all unique pairs of distinct places, in combinatorial
// order following the input: (p0,p1), (p0,p2), ..., (p1,p2), ... Downstream
// output order and tie breaking depend on this order being stable.
func Pairs(places []models.Place) []models.Pair {
	n := len(places)
	pairs := make([]models.Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, models.Pair{A: places[i], B: places[j]})
		}
	}
	return pairs
}
