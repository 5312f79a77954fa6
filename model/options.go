package model

import (
	"fmt"
	"math"

	"github.com/bobonovski/gosmt/matrix"
)

const DefaultEpsilon = 0.0001

// ConfigError reports an invalid training option.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("model: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

type Options struct {
	// training stops once the distance between consecutive tables
	// drops below Epsilon
	Epsilon float64
	// upper bound on the number of iterations, 0 means unbounded
	MaxIterations int
	// log the distance of every iteration and the iteration count
	Verbose bool
	// defaults to matrix.Distance
	Distance matrix.DistanceFunc
}

func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

func (o Options) Validate() error {
	if math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) || o.Epsilon <= 0 {
		return &ConfigError{Field: "epsilon", Value: o.Epsilon, Reason: "must be a positive number"}
	}
	if o.MaxIterations < 0 {
		return &ConfigError{Field: "max iterations", Value: o.MaxIterations, Reason: "must not be negative"}
	}
	return nil
}

func (o Options) distance() matrix.DistanceFunc {
	if o.Distance == nil {
		return matrix.Distance
	}
	return o.Distance
}
