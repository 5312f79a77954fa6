package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DistanceFunc computes a non-negative divergence between two matrices
// of identical shape.
type DistanceFunc func(a, b *Dense) float64

var distances = map[string]DistanceFunc{
	"euclidean": Distance,
	"max":       MaxDistance,
}

// DistanceByName looks up a distance function by its name.
func DistanceByName(name string) (DistanceFunc, error) {
	d, ok := distances[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDistance, name)
	}
	return d, nil
}

// DistanceNames lists the names accepted by DistanceByName.
func DistanceNames() []string {
	names := make([]string, 0, len(distances))
	for name := range distances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Distance is the Euclidean distance over all matrix entries.
func Distance(a, b *Dense) float64 {
	return LpDistance(a, b, 2)
}

// MaxDistance is the largest absolute difference between two entries.
func MaxDistance(a, b *Dense) float64 {
	return LpDistance(a, b, 0)
}

// LpDistance computes the L-norm of a - b over all entries. Any L <= 0
// is treated as the max norm. It panics with ErrShapeMismatch if the
// shapes differ.
func LpDistance(a, b *Dense, L float64) float64 {
	ar, ac := a.Shape()
	br, bc := b.Shape()
	if ar != br || ac != bc {
		panic(ErrShapeMismatch)
	}
	if L <= 0 {
		return floats.Distance(a.Raw(), b.Raw(), math.Inf(1))
	}
	return floats.Distance(a.Raw(), b.Raw(), L)
}
