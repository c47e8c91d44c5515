package dataflow

import (
	"testing"

	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepIsFalseWhenQuiescent(t *testing.T) {
	b := NewBuilder()
	NewInput[int](b, 1)
	g := b.Finalize()
	assert.False(t, g.Step())
}

func TestRunActivatesEveryFanOutBranch(t *testing.T) {
	b := NewBuilder()
	in, w := NewInput[int](b, 1)

	var left, right []collection.Entry[int]
	Sink(in.Filter(func(x int) bool { return x > 0 }), func(_ version.Version, c collection.Collection[int]) {
		left = append(left, c.Entries()...)
	}, nil)
	Sink(in.Negate(), func(_ version.Version, c collection.Collection[int]) {
		right = append(right, c.Entries()...)
	}, nil)

	g := b.Finalize()
	w.SendData(v1(0), collection.New(collection.Entry[int]{Record: 7, Multiplicity: 1}, collection.Entry[int]{Record: -3, Multiplicity: 1}))
	w.SendFrontier(version.NewAntichain(v1(1)))

	n := g.Run()
	require.Greater(t, n, 0)
	assert.False(t, g.Step())

	require.Len(t, left, 1)
	assert.Equal(t, 7, left[0].Record)

	require.Len(t, right, 2)
}
