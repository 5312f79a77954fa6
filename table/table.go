package table

import (
	"fmt"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/matrix"
)

// Table holds translation probabilities: the [e, f]-th element is the
// probability that source word f is the translation of target word e.
// Rows are indexed by target word ids and columns by source word ids.
type Table struct {
	target *corpus.Vocab
	source *corpus.Vocab
	p      *matrix.Dense
}

// New creates a zero filled table over the given vocabularies. It fails
// with a *DegenerateVocabularyError if either vocabulary is empty.
func New(target, source *corpus.Vocab) (*Table, error) {
	if target == nil || target.Size() == 0 {
		return nil, &DegenerateVocabularyError{Side: "target"}
	}
	if source == nil || source.Size() == 0 {
		return nil, &DegenerateVocabularyError{Side: "source"}
	}
	return &Table{
		target: target,
		source: source,
		p:      matrix.NewDense(target.Size(), source.Size()),
	}, nil
}

// NewUniform creates the initial table of the EM training where every
// target word is equally likely to align with any source word, i.e.
// every element is 1/|source vocabulary|.
func NewUniform(v *corpus.Vocabulary) (*Table, error) {
	t, err := New(v.Target, v.Source)
	if err != nil {
		return nil, err
	}
	t.p = matrix.NewFilledDense(v.Target.Size(), v.Source.Size(), 1/float64(v.Source.Size()))
	return t, nil
}

// Target returns the vocabulary indexing the rows.
func (t *Table) Target() *corpus.Vocab { return t.target }

// Source returns the vocabulary indexing the columns.
func (t *Table) Source() *corpus.Vocab { return t.source }

// Matrix exposes the underlying storage.
func (t *Table) Matrix() *matrix.Dense { return t.p }

// Get returns P[e][f], or 0 if either word is unknown.
func (t *Table) Get(e, f string) float64 {
	ei, fi := t.target.IdOf(e), t.source.IdOf(f)
	if ei == corpus.WordNil || fi == corpus.WordNil {
		return 0
	}
	return t.p.Get(ei, fi)
}

// Set assigns P[e][f].
func (t *Table) Set(e, f string, val float64) error {
	ei, fi := t.target.IdOf(e), t.source.IdOf(f)
	if ei == corpus.WordNil {
		return fmt.Errorf("%w: target %q", ErrUnknownWord, e)
	}
	if fi == corpus.WordNil {
		return fmt.Errorf("%w: source %q", ErrUnknownWord, f)
	}
	t.p.Set(ei, fi, val)
	return nil
}

// At returns the element for target id e and source id f.
func (t *Table) At(e, f int) float64 { return t.p.Get(e, f) }

// SetAt assigns the element for target id e and source id f.
func (t *Table) SetAt(e, f int, val float64) { t.p.Set(e, f, val) }

// Clone returns a deep copy sharing the (immutable) vocabularies.
func (t *Table) Clone() *Table {
	return &Table{
		target: t.target,
		source: t.source,
		p:      t.p.Clone(),
	}
}
