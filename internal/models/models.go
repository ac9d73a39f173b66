package models

import "errors"

// ErrTooFewPlaces is returned whenever fewer than two places are available;
// pairwise analysis needs at least one pair.
var ErrTooFewPlaces = errors.New("at least 2 places are required")

// Coordinate is a geographic point in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Place is a named coordinate. Places are never mutated after loading.
type Place struct {
	Name string
	Loc  Coordinate
}

// Pair holds two distinct places. Pairs are unordered; the field order
// records the enumeration order so output stays deterministic.
type Pair struct {
	A Place
	B Place
}

// Analysis is the result of one run: every unique pair, the matching
// great-circle distances in kilometers (index-aligned with Pairs), their
// arithmetic mean, and the index of the pair whose distance is nearest
// the mean.
type Analysis struct {
	Pairs        []Pair
	Distances    []float64
	Average      float64
	ClosestIndex int
}

// Closest returns the pair whose distance is nearest the average.
func (a *Analysis) Closest() Pair {
	return a.Pairs[a.ClosestIndex]
}

// ClosestDistance returns the distance of the closest pair in kilometers.
func (a *Analysis) ClosestDistance() float64 {
	return a.Distances[a.ClosestIndex]
}
