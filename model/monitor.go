package model

import (
	log "github.com/golang/glog"

	"github.com/bobonovski/gosmt/matrix"
	"github.com/bobonovski/gosmt/table"
)

type State int

const (
	Running State = iota
	Converged
	// the iteration cap was reached before convergence
	Exhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Monitor decides when EM training stops by comparing the tables of
// consecutive iterations.
type Monitor struct {
	epsilon       float64
	maxIterations int
	verbose       bool
	distance      matrix.DistanceFunc

	state      State
	iterations int
	distances  []float64
}

func NewMonitor(opts Options) *Monitor {
	return &Monitor{
		epsilon:       opts.Epsilon,
		maxIterations: opts.MaxIterations,
		verbose:       opts.Verbose,
		distance:      opts.distance(),
		state:         Running,
	}
}

// Observe records one completed iteration that turned prev into next
// and returns the resulting state. Observing in a terminal state is a
// no-op.
func (m *Monitor) Observe(prev, next *table.Table) State {
	if m.state != Running {
		return m.state
	}

	delta := m.distance(prev.Matrix(), next.Matrix())
	m.iterations += 1
	m.distances = append(m.distances, delta)
	if m.verbose {
		log.Infof("iter %5d, distance %e", m.iterations, delta)
	}

	switch {
	case delta < m.epsilon:
		m.state = Converged
	case m.maxIterations > 0 && m.iterations >= m.maxIterations:
		m.state = Exhausted
		log.Warningf("stopped after %d iterations without converging, last distance %e",
			m.iterations, delta)
	}
	return m.state
}

func (m *Monitor) State() State { return m.state }

func (m *Monitor) Iterations() int { return m.iterations }

// Distances returns the distance observed at every iteration.
func (m *Monitor) Distances() []float64 { return m.distances }
