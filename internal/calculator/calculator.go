package calculator

import (
	"math"

	"airdist/internal/models"
)

// Analyze computes the great-circle distance for every unique pair of
// places, the average of those distances, and the pair whose distance is
// closest to the average. Ties on the closest pair go to the earliest pair
// in enumeration order.
func Analyze(places []models.Place) (*models.Analysis, error) {
	if len(places) < 2 {
		return nil, models.ErrTooFewPlaces
	}

	pairs := Pairs(places)

	lat1 := make([]float64, len(pairs))
	lon1 := make([]float64, len(pairs))
	lat2 := make([]float64, len(pairs))
	lon2 := make([]float64, len(pairs))
	for i, p := range pairs {
		lat1[i] = toRadians(p.A.Loc.Lat)
		lon1[i] = toRadians(p.A.Loc.Lon)
		lat2[i] = toRadians(p.B.Loc.Lat)
		lon2[i] = toRadians(p.B.Loc.Lon)
	}

	distances, err := GreatCircleBatch(lat1, lon1, lat2, lon2)
	if err != nil {
		return nil, err
	}

	var sum float64
	for _, d := range distances {
		sum += d
	}
	average := sum / float64(len(distances))

	closest := 0
	best := math.Abs(average - distances[0])
	for i, d := range distances[1:] {
		if diff := math.Abs(average - d); diff < best {
			best = diff
			closest = i + 1
		}
	}

	return &models.Analysis{
		Pairs:        pairs,
		Distances:    distances,
		Average:      average,
		ClosestIndex: closest,
	}, nil
}
