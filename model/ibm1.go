package model

import (
	"context"

	log "github.com/golang/glog"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/matrix"
	"github.com/bobonovski/gosmt/table"
)

func init() {
	Register("ibm1", NewIBM1)
}

// sentence pair with words replaced by vocabulary ids
type idPair struct {
	target []int
	source []int
}

// IBM1 estimates word translation probabilities with IBM Model 1
// trained by expectation maximization.
type IBM1 struct {
	vocab   *corpus.Vocabulary
	pairs   []idPair
	opts    Options
	initial *table.Table
}

// NewIBM1 creates an IBM Model 1 trainer over dat. It fails with a
// *ConfigError for invalid options, a *corpus.FormatError for a pair
// with an empty sentence and a *table.DegenerateVocabularyError if dat
// has no words on one side.
func NewIBM1(dat *corpus.Corpus, opts Options) (Model, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	for i, p := range dat.Pairs {
		if len(p.Target) == 0 {
			return nil, &corpus.FormatError{Index: i, Lang: dat.TargetKey, Reason: "empty sentence"}
		}
		if len(p.Source) == 0 {
			return nil, &corpus.FormatError{Index: i, Lang: dat.SourceKey, Reason: "empty sentence"}
		}
	}

	vocab := corpus.NewVocabulary(dat)
	uniform, err := table.NewUniform(vocab)
	if err != nil {
		return nil, err
	}

	pairs := make([]idPair, len(dat.Pairs))
	for i, p := range dat.Pairs {
		pairs[i] = idPair{
			target: vocab.Target.Ids(p.Target),
			source: vocab.Source.Ids(p.Source),
		}
	}

	return &IBM1{
		vocab:   vocab,
		pairs:   pairs,
		opts:    opts,
		initial: uniform,
	}, nil
}

// Init returns the uniform table training starts from.
func (m *IBM1) Init() *table.Table {
	return m.initial
}

// Iterate performs one EM pass over the corpus and returns a new table;
// prev is not modified.
//
// For every occurrence of a target word e the expected alignment counts
// are normalized over the source words of its own sentence pair, while
// the new probabilities are normalized over the corpus wide totals of
// each source word f.
func (m *IBM1) Iterate(prev *table.Table) *table.Table {
	nt, ns := m.vocab.Target.Size(), m.vocab.Source.Size()
	counts := matrix.NewDense(nt, ns)
	totals := make([]float64, ns)

	var norm []float64
	for _, p := range m.pairs {
		if cap(norm) < len(p.target) {
			norm = make([]float64, len(p.target))
		}
		norm = norm[:len(p.target)]

		// expected count normalizer of every target occurrence
		for i, e := range p.target {
			norm[i] = 0
			for _, f := range p.source {
				norm[i] += prev.At(e, f)
			}
		}

		for i, e := range p.target {
			if norm[i] == 0 {
				continue
			}
			for _, f := range p.source {
				c := prev.At(e, f) / norm[i]
				counts.Incr(e, f, c)
				totals[f] += c
			}
		}
	}

	// both vocabularies are known to be non-empty
	next, _ := table.New(m.vocab.Target, m.vocab.Source)
	for e := 0; e < nt; e += 1 {
		for f := 0; f < ns; f += 1 {
			if totals[f] == 0 {
				// f never co-occurred with anything, leave it at 0
				continue
			}
			next.SetAt(e, f, counts.Get(e, f)/totals[f])
		}
	}
	return next
}

// Train iterates from the uniform table until the distance between two
// consecutive tables drops below the configured epsilon. ctx is checked
// between iterations.
func (m *IBM1) Train(ctx context.Context) (*Result, error) {
	monitor := NewMonitor(m.opts)

	prev := m.initial
	for monitor.State() == Running {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := m.Iterate(prev)
		monitor.Observe(prev, next)
		prev = next
	}

	if m.opts.Verbose {
		log.Infof("performed %d iterations", monitor.Iterations())
	}

	return &Result{
		Table:      prev,
		Iterations: monitor.Iterations(),
		Converged:  monitor.State() == Converged,
		Distances:  monitor.Distances(),
	}, nil
}
