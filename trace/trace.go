package trace

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
)

// Entry is one (version, delta-collection) pair in an unindexed Trace.
type Entry[T comparable] struct {
	Version version.Version
	Delta   collection.Collection[T]
}

// Trace is an ordered-by-insertion, unindexed difference trace: a list of
// (version, Collection) pairs. It backs operators that don't need per-key
// lookups (e.g. consolidate).
type Trace[T comparable] struct {
	entries []Entry[T]
}

// Append adds a (version, delta) pair. Never merges eagerly, even if an
// entry already exists at an equal version.
func (t *Trace[T]) Append(v version.Version, delta collection.Collection[T]) {
	t.entries = append(t.entries, Entry[T]{Version: version.Clone(v), Delta: delta})
}

// ReconstructAt sums the delta of every entry whose version is <= target,
// per the difference<->snapshot law: reconstruct_at(v) = sum of deltas at
// versions u <= v.
func (t *Trace[T]) ReconstructAt(target version.Version) collection.Collection[T] {
	var out collection.Collection[T]
	for _, e := range t.entries {
		if version.LessEqual(e.Version, target) {
			out = collection.Concat(out, e.Delta)
		}
	}
	return out
}

// Entries returns every stored entry. The caller must not mutate the
// returned slice.
func (t *Trace[T]) Entries() []Entry[T] {
	return t.entries
}

// ConsolidateUpTo merges entries at identical versions and physically drops
// any whose merged delta is empty and whose version is closed under
// frontier (i.e. not dominated by any frontier element, meaning no future
// input can still land at or below that version). Entries at versions still
// open under frontier are merged too, but kept even when their merged delta
// is empty, since a future delta might still need to be summed alongside
// them before the version closes downstream.
func (t *Trace[T]) ConsolidateUpTo(frontier version.Antichain) {
	type key struct {
		v string
	}
	merged := make(map[key]*Entry[T])
	order := make([]key, 0, len(t.entries))
	for _, e := range t.entries {
		k := key{v: e.Version.String()}
		if existing, ok := merged[k]; ok {
			existing.Delta = collection.Concat(existing.Delta, e.Delta)
		} else {
			ec := e
			merged[k] = &ec
			order = append(order, k)
		}
	}

	out := t.entries[:0]
	for _, k := range order {
		e := merged[k]
		closed := !frontier.LessEqualVersion(e.Version)
		if closed && e.Delta.Len() == 0 {
			continue
		}
		out = append(out, *e)
	}
	t.entries = out
}
