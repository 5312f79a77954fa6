package model

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/gosmt/corpus"
	"github.com/bobonovski/gosmt/matrix"
	"github.com/bobonovski/gosmt/table"
)

func newCorpus(pairs ...[2]string) *corpus.Corpus {
	c := &corpus.Corpus{TargetKey: "A", SourceKey: "B"}
	for _, p := range pairs {
		c.Pairs = append(c.Pairs, corpus.SentencePair{
			Target: corpus.Tokenize(p[0], false),
			Source: corpus.Tokenize(p[1], false),
		})
	}
	return c
}

func newIBM1(t *testing.T, c *corpus.Corpus, opts Options) *IBM1 {
	m, err := NewIBM1(c, opts)
	require.NoError(t, err)
	return m.(*IBM1)
}

func TestIBM1Registered(t *testing.T) {
	ctor, err := GetModel("ibm1")
	require.NoError(t, err)
	assert.NotNil(t, ctor)
	assert.Contains(t, Registered(), "ibm1")

	_, err = GetModel("ibm2")
	assert.Error(t, err)
}

func TestIBM1Init(t *testing.T) {
	m := newIBM1(t, newCorpus([2]string{"a b", "x y z"}), DefaultOptions())

	uniform := m.Init()
	for _, e := range []string{"a", "b"} {
		sum := 0.0
		for _, f := range []string{"x", "y", "z"} {
			assert.Equal(t, 1.0/3.0, uniform.Get(e, f))
			sum += uniform.Get(e, f)
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestIBM1ScenarioA(t *testing.T) {
	m := newIBM1(t, newCorpus([2]string{"a b", "x y"}), Options{Epsilon: 1e-12})

	next := m.Iterate(m.Init())
	for _, e := range []string{"a", "b"} {
		for _, f := range []string{"x", "y"} {
			assert.Equal(t, 0.5, next.Get(e, f))
		}
	}

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []float64{0}, res.Distances)
}

func TestIBM1IterateByHand(t *testing.T) {
	m := newIBM1(t, newCorpus(
		[2]string{"a b", "x y"},
		[2]string{"a c", "x z"},
	), DefaultOptions())

	prev := m.Init()
	next := m.Iterate(prev)

	// totals after one pass: x = 2, y = 1, z = 1
	assert.InDelta(t, 0.5, next.Get("a", "x"), 1e-12)
	assert.InDelta(t, 0.5, next.Get("a", "y"), 1e-12)
	assert.InDelta(t, 0.5, next.Get("a", "z"), 1e-12)
	assert.InDelta(t, 0.25, next.Get("b", "x"), 1e-12)
	assert.InDelta(t, 0.5, next.Get("b", "y"), 1e-12)
	assert.InDelta(t, 0.0, next.Get("b", "z"), 1e-12)
	assert.InDelta(t, 0.25, next.Get("c", "x"), 1e-12)
	assert.InDelta(t, 0.5, next.Get("c", "z"), 1e-12)

	// the previous table is left untouched
	assert.Equal(t, 1.0/3.0, prev.Get("b", "z"))

	next = m.Iterate(next)
	assert.InDelta(t, 0.6, next.Get("a", "x"), 1e-12)
	assert.InDelta(t, 0.5/(0.5+2.0/3.0), next.Get("a", "y"), 1e-12)
}

func TestIBM1RepeatedTokens(t *testing.T) {
	// "a" occurs twice so it contributes twice to every count
	m := newIBM1(t, newCorpus(
		[2]string{"a a", "x y"},
		[2]string{"b", "y"},
	), DefaultOptions())

	next := m.Iterate(m.Init())
	// totals: x = 1, y = 1 + 1
	assert.InDelta(t, 1.0, next.Get("a", "x"), 1e-12)
	assert.InDelta(t, 0.5, next.Get("a", "y"), 1e-12)
	assert.InDelta(t, 0.0, next.Get("b", "x"), 1e-12)
	assert.InDelta(t, 0.5, next.Get("b", "y"), 1e-12)
}

func TestIBM1ScenarioB(t *testing.T) {
	m := newIBM1(t, newCorpus(
		[2]string{"a b", "x y"},
		[2]string{"a c", "x z"},
	), Options{Epsilon: DefaultEpsilon, MaxIterations: 100000})

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, len(res.Distances), res.Iterations)
	assert.Equal(t, "x", res.Table.Best()["a"])
}

func TestIBM1IdempotentAtConvergence(t *testing.T) {
	m := newIBM1(t, newCorpus(
		[2]string{"a b", "x y"},
		[2]string{"a c", "x z"},
	), Options{Epsilon: 1e-7, MaxIterations: 1000000})

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	require.True(t, res.Converged)

	again := m.Iterate(res.Table)
	assert.Less(t, matrix.Distance(res.Table.Matrix(), again.Matrix()), 1e-6)
}

func TestIBM1MonotoneConvergence(t *testing.T) {
	m := newIBM1(t, newCorpus(
		[2]string{"the house", "das haus"},
		[2]string{"the book", "das buch"},
		[2]string{"a book", "ein buch"},
		[2]string{"a house", "ein haus"},
		[2]string{"the small house", "das kleine haus"},
	), Options{Epsilon: 1e-6, MaxIterations: 100000})

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Greater(t, len(res.Distances), 5)

	d := res.Distances
	assert.Less(t, d[len(d)-1], d[0])

	increases := 0
	for i := 6; i < len(d); i += 1 {
		if d[i] > d[i-1]*(1+1e-9) {
			increases += 1
		}
	}
	assert.LessOrEqual(t, increases*10, len(d)-6)

	best := res.Table.Best()
	assert.Equal(t, "das", best["the"])
	assert.Equal(t, "haus", best["house"])
	assert.Equal(t, "buch", best["book"])
}

func TestIBM1Deterministic(t *testing.T) {
	c := newCorpus(
		[2]string{"the house", "das haus"},
		[2]string{"the book", "das buch"},
		[2]string{"a book", "ein buch"},
	)
	opts := Options{Epsilon: 1e-5, MaxIterations: 10000}

	r1, err := newIBM1(t, c, opts).Train(context.Background())
	require.NoError(t, err)
	r2, err := newIBM1(t, c, opts).Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, r1.Iterations, r2.Iterations)
	assert.Equal(t, r1.Table.Matrix().Raw(), r2.Table.Matrix().Raw())
	assert.Equal(t, r1.Table.Best(), r2.Table.Best())
}

func TestIBM1EntriesStayFinite(t *testing.T) {
	m := newIBM1(t, newCorpus(
		[2]string{"a b c", "x"},
		[2]string{"c", "y y z"},
	), Options{Epsilon: 1e-6, MaxIterations: 1000})

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	for _, v := range res.Table.Matrix().Raw() {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestIBM1MaxIterations(t *testing.T) {
	m := newIBM1(t, newCorpus(
		[2]string{"a b", "x y"},
		[2]string{"a c", "x z"},
	), Options{Epsilon: 1e-300, MaxIterations: 3})

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
}

func TestIBM1Canceled(t *testing.T) {
	m := newIBM1(t, newCorpus([2]string{"a b", "x y"}), DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Train(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIBM1CustomDistance(t *testing.T) {
	calls := 0
	opts := Options{
		Epsilon: 0.5,
		Distance: func(a, b *matrix.Dense) float64 {
			calls += 1
			return 0.1
		},
	}
	m := newIBM1(t, newCorpus([2]string{"a b", "x y"}, [2]string{"a", "x"}), opts)

	res, err := m.Train(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, res.Iterations)
}

func TestNewIBM1Errors(t *testing.T) {
	for _, eps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewIBM1(newCorpus([2]string{"a", "x"}), Options{Epsilon: eps})
		var ce *ConfigError
		assert.True(t, errors.As(err, &ce), "epsilon %v", eps)
	}

	_, err := NewIBM1(newCorpus([2]string{"a", "x"}), Options{Epsilon: 1, MaxIterations: -1})
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))

	_, err = NewIBM1(newCorpus(), DefaultOptions())
	var de *table.DegenerateVocabularyError
	assert.True(t, errors.As(err, &de))
}

func TestNewIBM1RejectsEmptySentence(t *testing.T) {
	c := &corpus.Corpus{
		TargetKey: "A",
		SourceKey: "B",
		Pairs: []corpus.SentencePair{
			{Target: []string{"a"}, Source: []string{"x"}},
			{Target: []string{"b"}},
		},
	}

	_, err := NewIBM1(c, DefaultOptions())
	var fe *corpus.FormatError
	require.True(t, errors.As(err, &fe), "unexpected error %v", err)
	assert.Equal(t, 1, fe.Index)
	assert.Equal(t, "B", fe.Lang)

	c.Pairs[1] = corpus.SentencePair{Source: []string{"y"}}
	_, err = NewIBM1(c, DefaultOptions())
	require.True(t, errors.As(err, &fe), "unexpected error %v", err)
	assert.Equal(t, 1, fe.Index)
	assert.Equal(t, "A", fe.Lang)
}
