package places

import (
	"fmt"
	"math/rand"

	"airdist/internal/models"
)

// Generate produces n randomly located places named "Place 0" .. "Place n-1".
// Latitude is uniform in [-90, 90] and longitude uniform in [-180, 180].
// The random source is supplied by the caller so tests can seed it.
func Generate(rng *rand.Rand, n int) ([]models.Place, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", models.ErrTooFewPlaces, n)
	}

	result := make([]models.Place, n)
	for i := range result {
		result[i] = models.Place{
			Name: fmt.Sprintf("Place %d", i),
			Loc: models.Coordinate{
				Lat: rng.Float64()*180 - 90,
				Lon: rng.Float64()*360 - 180,
			},
		}
	}
	return result, nil
}
