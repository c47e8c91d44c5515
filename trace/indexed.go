package trace

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
)

// Tuple is one (value, version, multiplicity) entry stored for a key in an
// IndexedTrace.
type Tuple[V comparable] struct {
	Value        V
	Version      version.Version
	Multiplicity int64
}

// IndexedTrace maps key K to the tuples recorded for it, supporting the
// per-key reconstruction join and reduce require without scanning the full
// history on every incoming delta.
type IndexedTrace[K comparable, V comparable] struct {
	byKey map[K][]Tuple[V]
}

// Append adds one tuple for key. Never merges eagerly.
func (t *IndexedTrace[K, V]) Append(v version.Version, key K, value V, mult int64) {
	if mult == 0 {
		return
	}
	if t.byKey == nil {
		t.byKey = make(map[K][]Tuple[V])
	}
	t.byKey[key] = append(t.byKey[key], Tuple[V]{Value: value, Version: version.Clone(v), Multiplicity: mult})
}

// TuplesForKey returns every tuple stored for key (empty if none). The
// caller must not mutate the returned slice.
func (t *IndexedTrace[K, V]) TuplesForKey(key K) []Tuple[V] {
	return t.byKey[key]
}

// Keys returns every key with at least one stored tuple. Order is
// unspecified.
func (t *IndexedTrace[K, V]) Keys() []K {
	out := make([]K, 0, len(t.byKey))
	for k := range t.byKey {
		out = append(out, k)
	}
	return out
}

// ReconstructPerKeyAt sums the multiplicities of every tuple for key whose
// version is <= target, grouped by value.
func (t *IndexedTrace[K, V]) ReconstructPerKeyAt(key K, target version.Version) collection.Collection[V] {
	var out collection.Collection[V]
	for _, tup := range t.byKey[key] {
		if version.LessEqual(tup.Version, target) {
			out = collection.Concat(out, collection.New(collection.Entry[V]{Record: tup.Value, Multiplicity: tup.Multiplicity}))
		}
	}
	return out
}

// ReconstructAt sums every tuple (any key) whose version is <= target,
// producing the full keyed multiset at that version.
func (t *IndexedTrace[K, V]) ReconstructAt(target version.Version) collection.Collection[collection.KV[K, V]] {
	var out collection.Collection[collection.KV[K, V]]
	for k, tuples := range t.byKey {
		for _, tup := range tuples {
			if version.LessEqual(tup.Version, target) {
				out = collection.Concat(out, collection.New(collection.Entry[collection.KV[K, V]]{
					Record:       collection.KV[K, V]{Key: k, Value: tup.Value},
					Multiplicity: tup.Multiplicity,
				}))
			}
		}
	}
	return out
}

// VersionsTouchedBy returns the deduplicated set of versions stored (across
// all keys in the given slice) for which this trace holds at least one
// tuple: for a given incoming delta's keys, the historical versions on this
// trace that delta could pair against. joinOp does not call it; it pairs
// each delta record against TuplesForKey directly.
func (t *IndexedTrace[K, V]) VersionsTouchedBy(keys []K) []version.Version {
	seen := make(map[string]bool)
	var out []version.Version
	for _, k := range keys {
		for _, tup := range t.byKey[k] {
			s := tup.Version.String()
			if !seen[s] {
				seen[s] = true
				out = append(out, tup.Version)
			}
		}
	}
	return out
}

// ConsolidateUpTo merges tuples at identical (key, value, version) and
// physically drops any whose merged multiplicity is zero, but the drop
// happens only for versions closed under frontier (not dominated by any
// frontier element). Tuples at versions still open under frontier are
// merged too, but kept even at zero: a future delta might still need to be
// summed alongside them.
func (t *IndexedTrace[K, V]) ConsolidateUpTo(frontier version.Antichain) {
	type vvKey struct {
		value   V
		version string
	}
	for k, tuples := range t.byKey {
		merged := make(map[vvKey]int64, len(tuples))
		order := make([]vvKey, 0, len(tuples))
		versions := make(map[vvKey]version.Version, len(tuples))
		for _, tup := range tuples {
			vk := vvKey{value: tup.Value, version: tup.Version.String()}
			if _, ok := merged[vk]; !ok {
				order = append(order, vk)
				versions[vk] = tup.Version
			}
			merged[vk] += tup.Multiplicity
		}

		out := tuples[:0]
		for _, vk := range order {
			mult := merged[vk]
			v := versions[vk]
			closed := !frontier.LessEqualVersion(v)
			if closed && mult == 0 {
				continue
			}
			out = append(out, Tuple[V]{Value: vk.value, Version: v, Multiplicity: mult})
		}
		if len(out) == 0 {
			delete(t.byKey, k)
		} else {
			t.byKey[k] = out
		}
	}
}
