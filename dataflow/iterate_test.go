package dataflow

import (
	"testing"

	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIterateConvergesWithDistinct builds a loop body that is monotone
// (Distinct never un-derives anything once a value is present), so after
// the first inner round the body stops producing new deltas and the
// subgraph should reach quiescence: Run must terminate.
func TestIterateConvergesWithDistinct(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[collection.KV[int, int]](b, 1)

	out := Iterate[collection.KV[int, int]](b, in, func(s Stream[collection.KV[int, int]]) Stream[collection.KV[int, int]] {
		return Distinct(s)
	})

	var got []collection.Entry[collection.KV[int, int]]
	var sawEmptyFrontier bool
	Sink(out, func(_ version.Version, c collection.Collection[collection.KV[int, int]]) {
		got = append(got, c.Entries()...)
	}, func(a version.Antichain) {
		if a.IsEmpty() {
			sawEmptyFrontier = true
		}
	})

	g := b.Finalize()

	w.SendData(v1(0), collection.New(collection.Entry[collection.KV[int, int]]{
		Record: collection.KV[int, int]{Key: 1, Value: 1}, Multiplicity: 1,
	}))
	w.SendFrontier(version.Antichain{})

	n := g.Run()
	require.Greater(t, n, 0)
	assert.True(t, sawEmptyFrontier)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Record.Key)
	assert.Equal(t, 1, got[0].Record.Value)
	assert.Equal(t, int64(1), got[0].Multiplicity)
}

// TestIterateBoundedStepsWithoutConsolidate exercises a loop body that
// keeps re-deriving the same record every round without ever collapsing to
// an empty delta (no Distinct/Consolidate on the feedback path). Per
// spec.md's documented non-termination scenario, such a loop must only ever
// be driven a bounded number of Step calls, never run to quiescence.
func TestIterateBoundedStepsWithoutConsolidate(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[int](b, 1)

	out := Iterate[int](b, in, func(s Stream[int]) Stream[int] {
		return Map(s, func(x int) int { return x })
	})

	var batches int
	Sink(out, func(_ version.Version, c collection.Collection[int]) {
		batches++
	}, nil)

	g := b.Finalize()
	w.SendData(v1(0), collection.New(collection.Entry[int]{Record: 1, Multiplicity: 1}))
	w.SendFrontier(version.Antichain{})

	const stepBudget = 200
	for i := 0; i < stepBudget; i++ {
		if !g.Step() {
			break
		}
	}
	assert.Greater(t, batches, 1)
}
