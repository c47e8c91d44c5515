package dataflow

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/trace"
	"github.com/joeycumines/go-differential/version"
)

// reduceOp backs Reduce/Count/Sum/Distinct: per key, it recomputes fn over
// the full recorded multiset of values at each version of that key's
// history as that version closes under the input frontier, and emits only
// the difference from
// whatever it last produced for that key (spec.md section 4.8). Non-linear:
// unlike map/filter/negate/concat, it cannot be computed from a single
// incoming delta in isolation.
type reduceOp struct {
	base
	tr          trace.IndexedTrace[any, any]
	fn          func(key any, values []collection.Entry[any]) []collection.Entry[any]
	lastEmitted map[any][]collection.Entry[any]
	dirty       map[any]bool
	lastOut     version.Antichain
	haveOut     bool
}

func (o *reduceOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			for _, e := range m.delta.Entries() {
				kv := e.Record.(collection.KV[any, any])
				o.tr.Append(m.version, kv.Key, kv.Value, e.Multiplicity)
				if o.dirty == nil {
					o.dirty = make(map[any]bool)
				}
				o.dirty[kv.Key] = true
			}
		case msgFrontier:
			o.advance(g, m.frontier)
		}
	}
}

// advance recomputes fn for every key touched since the last advance, once
// per closed version that key's history gained tuples at - not once per
// key. A key touched at both v0 and v1, closed together by a frontier that
// jumps straight to the terminal antichain, must still emit a diff labeled
// v0 reflecting the reconstruction as of v0 alone, then a second diff
// labeled v1 reflecting the reconstruction as of v1 - never a single batch
// at Join(v0, v1) that skips v0 entirely (the sum of all batches up to and
// including v0 must equal the result there, spec.md section 4.8 / property
// 6).
func (o *reduceOp) advance(g *Graph, f version.Antichain) {
	for k := range o.dirty {
		tuples := o.tr.TuplesForKey(k)
		closedVersions, allClosed := closedVersionsOf(tuples, f)
		for _, v := range orderVersions(closedVersions) {
			if o.haveOut && isClosed(v, o.lastOut) {
				// already walked by the advance whose frontier closed it
				continue
			}
			values := o.tr.ReconstructPerKeyAt(k, v).Entries()
			newOut := o.fn(k, values)
			diff := diffEntries(o.lastEmitted[k], newOut)
			if len(diff) > 0 {
				var c collection.Collection[any]
				for _, d := range diff {
					c = collection.Concat(c, collection.New(collection.Entry[any]{
						Record:       collection.KV[any, any]{Key: k, Value: d.Record},
						Multiplicity: d.Multiplicity,
					}))
				}
				o.emit(g, 0, v, c)
			}
			if newOut == nil {
				delete(o.lastEmitted, k)
			} else {
				o.lastEmitted[k] = newOut
			}
		}
		if allClosed {
			delete(o.dirty, k)
		}
	}
	o.tr.ConsolidateUpTo(f)
	if o.haveOut && f.Equal(o.lastOut) {
		return
	}
	o.lastOut, o.haveOut = f, true
	o.emitFrontier(g, 0, f)
}

// closedVersionsOf returns the distinct versions, among tuples, that are
// closed under f, alongside whether every tuple (not just the distinct
// closed versions) is closed - false means some tuple is still open, so
// the key must stay dirty for a future advance even though nothing more
// can be emitted for it right now.
func closedVersionsOf[V comparable](tuples []trace.Tuple[V], f version.Antichain) ([]version.Version, bool) {
	seen := make(map[string]bool, len(tuples))
	var out []version.Version
	allClosed := true
	for _, t := range tuples {
		if !isClosed(t.Version, f) {
			allClosed = false
			continue
		}
		s := t.Version.String()
		if !seen[s] {
			seen[s] = true
			out = append(out, t.Version)
		}
	}
	return out, allClosed
}

// orderVersions returns vs as a linear extension of the product order: any
// permutation where a version never precedes one it is strictly greater
// than. This lets advance walk versions in increasing order even when a
// key's tuples span an iterate subgraph's multi-coordinate version space,
// so lastEmitted always reflects a single coherent predecessor state.
func orderVersions(vs []version.Version) []version.Version {
	remaining := append([]version.Version(nil), vs...)
	out := make([]version.Version, 0, len(remaining))
	for len(remaining) > 0 {
		idx := 0
		for i, cand := range remaining {
			minimal := true
			for j, other := range remaining {
				if i == j {
					continue
				}
				if version.LessEqual(other, cand) && !version.Equal(other, cand) {
					minimal = false
					break
				}
			}
			if minimal {
				idx = i
				break
			}
		}
		out = append(out, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

// diffEntries returns the multiset difference new-minus-old, dropping any
// record whose net multiplicity is zero.
func diffEntries(old, new []collection.Entry[any]) []collection.Entry[any] {
	totals := make(map[any]int64, len(old)+len(new))
	for _, e := range old {
		totals[e.Record] -= e.Multiplicity
	}
	for _, e := range new {
		totals[e.Record] += e.Multiplicity
	}
	var out []collection.Entry[any]
	for rec, m := range totals {
		if m != 0 {
			out = append(out, collection.Entry[any]{Record: rec, Multiplicity: m})
		}
	}
	return out
}
