package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/table"
)

func uniformTable(t *testing.T) *table.Table {
	tbl, err := table.NewUniform(&corpus.Vocabulary{
		Target: corpus.NewVocab([]string{"a", "b"}),
		Source: corpus.NewVocab([]string{"x", "y"}),
	})
	require.NoError(t, err)
	return tbl
}

func TestMonitorConverges(t *testing.T) {
	prev := uniformTable(t)
	next := prev.Clone()
	next.SetAt(0, 0, 0.6)

	m := NewMonitor(Options{Epsilon: 0.01, Verbose: true})
	assert.Equal(t, Running, m.State())
	assert.Equal(t, 0, m.Iterations())

	assert.Equal(t, Running, m.Observe(prev, next))
	assert.Equal(t, 1, m.Iterations())
	assert.InDelta(t, 0.1, m.Distances()[0], 1e-12)

	assert.Equal(t, Converged, m.Observe(next, next.Clone()))
	assert.Equal(t, 2, m.Iterations())

	// terminal
	assert.Equal(t, Converged, m.Observe(prev, next))
	assert.Equal(t, 2, m.Iterations())
}

func TestMonitorExhausted(t *testing.T) {
	prev := uniformTable(t)
	next := prev.Clone()
	next.SetAt(1, 1, 0.9)

	m := NewMonitor(Options{Epsilon: 0.01, MaxIterations: 2})
	assert.Equal(t, Running, m.Observe(prev, next))
	assert.Equal(t, Exhausted, m.Observe(prev, next))
	assert.Equal(t, "exhausted", m.State().String())
}

func TestMonitorConvergenceWinsOverCap(t *testing.T) {
	prev := uniformTable(t)

	m := NewMonitor(Options{Epsilon: 0.01, MaxIterations: 1})
	assert.Equal(t, Converged, m.Observe(prev, prev.Clone()))
}
