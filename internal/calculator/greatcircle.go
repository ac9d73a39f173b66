package calculator

import (
	"fmt"
	"math"
)

const earthRadius = 6371.0 // km, spherical approximation

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// GreatCircle computes the great-circle distance in kilometers between two
// points given in radians, using the spherical law of cosines.
func GreatCircle(lat1, lon1, lat2, lon2 float64) float64 {
	c := math.Sin(lat1)*math.Sin(lat2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon1-lon2)

	// Rounding can push the cosine just outside [-1, 1] for identical or
	// antipodal points, which would make Acos return NaN.
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}

	return earthRadius * math.Acos(c)
}

// GreatCircleBatch evaluates GreatCircle elementwise over four equal-length
// coordinate slices (radians) and returns one distance per index.
func GreatCircleBatch(lat1, lon1, lat2, lon2 []float64) ([]float64, error) {
	n := len(lat1)
	if len(lon1) != n || len(lat2) != n || len(lon2) != n {
		return nil, fmt.Errorf("coordinate slices must have equal length, got %d/%d/%d/%d",
			len(lat1), len(lon1), len(lat2), len(lon2))
	}

	distances := make([]float64, n)
	for i := 0; i < n; i++ {
		distances[i] = GreatCircle(lat1[i], lon1[i], lat2[i], lon2[i])
	}
	return distances, nil
}
