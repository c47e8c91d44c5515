package dataflow

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/trace"
	"github.com/joeycumines/go-differential/version"
)

// joinOp pairs records sharing a key across two inputs, incrementally: each
// incoming delta is matched against the opposite side's full indexed
// history (trace.IndexedTrace), not recomputed from scratch (spec.md
// section 4.7). Every record on both inputs is a collection.KV[any, any];
// the operator never unwraps the value further.
type joinOp struct {
	base
	left, right trace.IndexedTrace[any, any]
	seen        [2]bool
	lastOut     version.Antichain
	haveOut     bool
}

// joinBatches accumulates output records grouped by the version each
// resulted from, since a single incoming delta can produce pairs at several
// distinct joined versions (version.Join(v, tuple.Version) differs per
// matched tuple).
type joinBatches struct {
	order    []string
	versions map[string]version.Version
	deltas   map[string]collection.Collection[any]
}

func newJoinBatches() *joinBatches {
	return &joinBatches{versions: make(map[string]version.Version), deltas: make(map[string]collection.Collection[any])}
}

func (jb *joinBatches) add(v version.Version, rec collection.KV[any, any], mult int64) {
	vs := v.String()
	if _, ok := jb.versions[vs]; !ok {
		jb.versions[vs] = v
		jb.order = append(jb.order, vs)
	}
	c := jb.deltas[vs]
	c = collection.Concat(c, collection.New(collection.Entry[any]{Record: rec, Multiplicity: mult}))
	jb.deltas[vs] = c
}

func (o *joinOp) step(g *Graph) {
	out := newJoinBatches()

	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.ingestLeft(m.version, m.delta, out)
		case msgFrontier:
			o.inputFront[0] = m.frontier
			o.seen[0] = true
			o.right.ConsolidateUpTo(m.frontier)
		}
	}
	for _, m := range o.drainInput(g, 1) {
		switch m.kind {
		case msgData:
			o.ingestRight(m.version, m.delta, out)
		case msgFrontier:
			o.inputFront[1] = m.frontier
			o.seen[1] = true
			o.left.ConsolidateUpTo(m.frontier)
		}
	}

	for _, vs := range out.order {
		o.emit(g, 0, out.versions[vs], out.deltas[vs])
	}

	combined, ok := combineTwoFrontiers(o.seen[0], o.inputFront[0], o.seen[1], o.inputFront[1])
	if !ok {
		return
	}
	if o.haveOut && combined.Equal(o.lastOut) {
		return
	}
	o.lastOut, o.haveOut = combined, true
	o.emitFrontier(g, 0, combined)
}

// ingestLeft joins each new left record against the right trace's current
// state (processed before any of this activation's right-side delta is
// appended), then records the left tuple.
func (o *joinOp) ingestLeft(v version.Version, delta collection.Collection[any], out *joinBatches) {
	for _, e := range delta.Entries() {
		kv := e.Record.(collection.KV[any, any])
		for _, tup := range o.right.TuplesForKey(kv.Key) {
			out.add(version.Join(v, tup.Version), collection.KV[any, any]{
				Key:   kv.Key,
				Value: collection.Pair[any, any]{First: kv.Value, Second: tup.Value},
			}, e.Multiplicity*tup.Multiplicity)
		}
		o.left.Append(v, kv.Key, kv.Value, e.Multiplicity)
	}
}

// ingestRight joins each new right record against the left trace's current
// state, which by this point in step already includes this activation's
// left-side delta: this is what makes the left-delta x right-delta cross
// term land exactly once (in this call), alongside left-delta x right-old
// (computed in ingestLeft) and left-old x right-delta.
func (o *joinOp) ingestRight(v version.Version, delta collection.Collection[any], out *joinBatches) {
	for _, e := range delta.Entries() {
		kv := e.Record.(collection.KV[any, any])
		for _, tup := range o.left.TuplesForKey(kv.Key) {
			out.add(version.Join(tup.Version, v), collection.KV[any, any]{
				Key:   kv.Key,
				Value: collection.Pair[any, any]{First: tup.Value, Second: kv.Value},
			}, tup.Multiplicity*e.Multiplicity)
		}
		o.right.Append(v, kv.Key, kv.Value, e.Multiplicity)
	}
}
