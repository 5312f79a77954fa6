package model

import (
	"context"
	"fmt"
	"sort"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/table"
)

var constructors = make(map[string]ModelCtor)

// the common interface word translation models should follow
type Model interface {
	// run EM iterations until the convergence monitor stops
	Train(ctx context.Context) (*Result, error)
	// perform a single EM iteration starting from prev
	Iterate(prev *table.Table) *table.Table
	// the table training starts from
	Init() *table.Table
}

// Result is the outcome of a training run.
type Result struct {
	Table      *table.Table
	Iterations int
	// false when training stopped at Options.MaxIterations
	Converged bool
	// distance between consecutive tables, one per iteration
	Distances []float64
}

// new translation models should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(dat *corpus.Corpus, opts Options) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}

// Registered lists the names of all registered models.
func Registered() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
