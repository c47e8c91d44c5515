package dataflow

import (
	"testing"

	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPairsMatchingKeys(t *testing.T) {
	b := NewBuilder()
	l, wl := NewInput[collection.KV[int, string]](b, 1)
	r, wr := NewInput[collection.KV[int, string]](b, 1)

	var got []collection.Entry[collection.KV[int, collection.Pair[string, string]]]
	Sink(Join(l, r), func(_ version.Version, c collection.Collection[collection.KV[int, collection.Pair[string, string]]]) {
		got = append(got, c.Entries()...)
	}, nil)

	g := b.Finalize()

	wl.SendData(v1(0), collection.New(
		collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 1, Value: `x`}, Multiplicity: 1},
		collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 2, Value: `y`}, Multiplicity: 1},
	))
	wr.SendData(v1(0), collection.New(
		collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 1, Value: `p`}, Multiplicity: 1},
		collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 1, Value: `q`}, Multiplicity: 1},
		collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 3, Value: `r`}, Multiplicity: 1},
	))
	wl.SendFrontier(version.NewAntichain(v1(1)))
	wr.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()

	require.Len(t, got, 2)
	values := map[string]bool{}
	for _, e := range got {
		require.Equal(t, 1, e.Record.Key)
		assert.Equal(t, `x`, e.Record.Value.First)
		assert.Equal(t, int64(1), e.Multiplicity)
		values[e.Record.Value.Second] = true
	}
	assert.True(t, values[`p`])
	assert.True(t, values[`q`])
}

func TestJoinIncrementalCrossTerms(t *testing.T) {
	b := NewBuilder()
	l, wl := NewInput[collection.KV[int, string]](b, 1)
	r, wr := NewInput[collection.KV[int, string]](b, 1)

	var count int
	Sink(Join(l, r), func(_ version.Version, c collection.Collection[collection.KV[int, collection.Pair[string, string]]]) {
		count += c.Len()
	}, nil)

	g := b.Finalize()
	wl.SendData(v1(0), collection.New(collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 1, Value: `x`}, Multiplicity: 1}))
	wr.SendData(v1(0), collection.New(collection.Entry[collection.KV[int, string]]{Record: collection.KV[int, string]{Key: 1, Value: `p`}, Multiplicity: 1}))
	wl.SendFrontier(version.NewAntichain(v1(1)))
	wr.SendFrontier(version.NewAntichain(v1(1)))
	g.Run()

	assert.Equal(t, 1, count)
}
