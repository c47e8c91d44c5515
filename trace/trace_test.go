package trace

import (
	"testing"

	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
	"github.com/stretchr/testify/assert"
)

func TestDifferenceSnapshotLaw(t *testing.T) {
	var tr Trace[string]
	tr.Append(version.New(0), collection.New(collection.Entry[string]{`a`, 2}))
	tr.Append(version.New(1), collection.New(collection.Entry[string]{`a`, -1}, collection.Entry[string]{`b`, 1}))
	tr.Append(version.New(2), collection.New(collection.Entry[string]{`b`, -1}))

	assert.True(t, tr.ReconstructAt(version.New(0)).Equal(collection.New(collection.Entry[string]{`a`, 2})))
	assert.True(t, tr.ReconstructAt(version.New(1)).Equal(collection.New(collection.Entry[string]{`a`, 1}, collection.Entry[string]{`b`, 1})))
	assert.True(t, tr.ReconstructAt(version.New(2)).Equal(collection.New(collection.Entry[string]{`a`, 1})))
}

func TestConsolidateUpToMergesAndDropsClosedZeros(t *testing.T) {
	var tr Trace[string]
	tr.Append(version.New(0), collection.New(collection.Entry[string]{`a`, 1}))
	tr.Append(version.New(0), collection.New(collection.Entry[string]{`a`, -1})) // merges to zero at v=0
	tr.Append(version.New(5), collection.New(collection.Entry[string]{`b`, 1}))  // still open

	// frontier is past v=0 but not v=5
	tr.ConsolidateUpTo(version.NewAntichain(version.New(1)))
	assert.Len(t, tr.Entries(), 1)
	assert.Equal(t, version.New(5), tr.Entries()[0].Version)

	// reconstruction is unaffected by consolidation
	assert.True(t, tr.ReconstructAt(version.New(5)).Equal(collection.New(collection.Entry[string]{`b`, 1})))
}

func TestConsolidateUpToKeepsOpenZeroEntries(t *testing.T) {
	var tr Trace[string]
	tr.Append(version.New(5), collection.New(collection.Entry[string]{`a`, 1}))
	tr.Append(version.New(5), collection.New(collection.Entry[string]{`a`, -1}))

	// frontier doesn't dominate v=5: a future delta might still need it, so
	// the merged (now zero) entry is kept rather than dropped.
	tr.ConsolidateUpTo(version.NewAntichain(version.New(0)))
	assert.Len(t, tr.Entries(), 1)
}
