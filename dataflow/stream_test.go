package dataflow

import (
	"testing"

	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v1(n uint64) version.Version { return version.New(n) }

func TestMapFilterConsolidateLinearChain(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[int](b, 1)
	doubled := Map(in, func(x int) int { return x * 2 })
	even := doubled.Filter(func(x int) bool { return x%4 == 0 }).Consolidate().Debug(`even`)

	var got []collection.Entry[int]
	Sink(even, func(_ version.Version, c collection.Collection[int]) {
		got = append(got, c.Entries()...)
	}, nil)

	g := b.Finalize()
	w.SendData(v1(0), collection.New(collection.Entry[int]{Record: 1, Multiplicity: 1}, collection.Entry[int]{Record: 2, Multiplicity: 1}))
	w.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Record)
	assert.Equal(t, int64(1), got[0].Multiplicity)
}

func TestNegateRetracts(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[string](b, 1)

	var got []collection.Entry[string]
	Sink(in.Negate(), func(_ version.Version, c collection.Collection[string]) {
		got = append(got, c.Entries()...)
	}, nil)

	g := b.Finalize()
	w.SendData(v1(0), collection.New(collection.Entry[string]{Record: `x`, Multiplicity: 3}))
	w.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()

	require.Len(t, got, 1)
	assert.Equal(t, `x`, got[0].Record)
	assert.Equal(t, int64(-3), got[0].Multiplicity)
}

func TestConcatCombinesTwoInputs(t *testing.T) {
	b := NewBuilder()
	a, wa := NewInput[string](b, 1)
	c, wc := NewInput[string](b, 1)

	var got []collection.Entry[string]
	Sink(a.Concat(c).Consolidate(), func(_ version.Version, coll collection.Collection[string]) {
		got = append(got, coll.Entries()...)
	}, nil)

	g := b.Finalize()
	wa.SendData(v1(0), collection.New(collection.Entry[string]{Record: `x`, Multiplicity: 1}))
	wa.SendFrontier(version.NewAntichain(v1(1)))
	wc.SendData(v1(0), collection.New(collection.Entry[string]{Record: `x`, Multiplicity: 1}))
	wc.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()

	require.Len(t, got, 1)
	assert.Equal(t, `x`, got[0].Record)
	assert.Equal(t, int64(2), got[0].Multiplicity)
}

func TestConsolidateEmitsExactlyOnceAtClosedVersion(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[string](b, 1)

	var batches int
	var got []collection.Entry[string]
	Sink(in.Consolidate(), func(_ version.Version, c collection.Collection[string]) {
		batches++
		got = append(got, c.Entries()...)
	}, nil)

	g := b.Finalize()
	w.SendData(v1(0), collection.New(collection.Entry[string]{Record: `x`, Multiplicity: 1}))
	w.SendData(v1(0), collection.New(collection.Entry[string]{Record: `x`, Multiplicity: 1}))
	w.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()

	assert.Equal(t, 1, batches)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Multiplicity)
}

func TestFrontierPassesThroughMapFilter(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[int](b, 1)

	var frontiers []version.Antichain
	Sink(Map(in, func(x int) int { return x }).Filter(func(int) bool { return true }), nil, func(a version.Antichain) {
		frontiers = append(frontiers, a)
	})

	g := b.Finalize()
	w.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()
	w.SendFrontier(version.Antichain{})
	g.Run()

	require.Len(t, frontiers, 2)
	assert.True(t, frontiers[0].Equal(version.NewAntichain(v1(1))))
	assert.True(t, frontiers[1].IsEmpty())
}
