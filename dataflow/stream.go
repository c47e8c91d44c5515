package dataflow

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
)

// Stream[T] is a typed handle onto one output port of one operator in a
// Builder's graph. It carries no data itself; every method adds a new
// operator to the underlying Graph and returns a handle to its output.
// Records cross the untyped runtime boundary (message.delta is
// collection.Collection[any]) only inside the wrapper closures built here,
// keeping the Graph/operator machinery itself free of type parameters, per
// spec.md section 9's "polymorphism of streams" design note.
type Stream[T comparable] struct {
	b    *Builder
	op   int
	port int
}

func wrapAny[T comparable](v any) T { return v.(T) }

func toAny[T comparable](v T) any { return v }

// castCollection converts a Collection[any] whose records are actually of
// type T into a Collection[T], the typed side of the Stream[T] boundary.
func castCollection[T comparable](c collection.Collection[any]) collection.Collection[T] {
	return collection.Map(c, wrapAny[T])
}

func eraseCollection[T comparable](c collection.Collection[T]) collection.Collection[any] {
	return collection.Map(c, toAny[T])
}

// eraseKV and restoreKV adapt a typed KV[K, V] stream to and from the
// KV[any, any] shape joinOp/reduceOp operate on: their incoming records
// arrive already erased to `any`, wrapping whatever concrete type a
// previous stage produced (e.g. KV[int, string] from a Writer), never the
// KV[any, any] shape itself, so Join/Reduce must rebuild that shape
// explicitly rather than asserting it exists.
func eraseKV[K, V comparable](kv collection.KV[K, V]) collection.KV[any, any] {
	return collection.KV[any, any]{Key: any(kv.Key), Value: any(kv.Value)}
}

func restoreKV[K, V comparable](kv collection.KV[any, any]) collection.KV[K, V] {
	return collection.KV[K, V]{Key: wrapAny[K](kv.Key), Value: wrapAny[V](kv.Value)}
}

// Map applies f to every record. Linear: changes the record type, so it is
// a package-level function rather than a method (Go does not allow a
// method to introduce a type parameter beyond its receiver's).
func Map[T, U comparable](s Stream[T], f func(T) U) Stream[U] {
	s.b.checkOpen()
	op := &mapOp{
		base: newBase(0, `map`, 1, 1),
		fn:   func(v any) any { return f(wrapAny[T](v)) },
	}
	id := s.b.g.addOperator(op)
	s.b.g.connect(s.op, s.port, id, 0)
	return Stream[U]{b: s.b, op: id, port: 0}
}

// Filter keeps only records for which pred returns true. Linear.
func (s Stream[T]) Filter(pred func(T) bool) Stream[T] {
	s.b.checkOpen()
	op := &filterOp{
		base: newBase(0, `filter`, 1, 1),
		pred: func(v any) bool { return pred(wrapAny[T](v)) },
	}
	id := s.b.g.addOperator(op)
	s.b.g.connect(s.op, s.port, id, 0)
	return Stream[T]{b: s.b, op: id, port: 0}
}

// Negate flips the sign of every record's multiplicity. Linear; paired with
// Concat this is how the runtime expresses retraction (a - b == a concat
// negate(b)).
func (s Stream[T]) Negate() Stream[T] {
	s.b.checkOpen()
	id := s.b.g.addOperator(&negateOp{base: newBase(0, `negate`, 1, 1)})
	s.b.g.connect(s.op, s.port, id, 0)
	return Stream[T]{b: s.b, op: id, port: 0}
}

// Concat merges s and other into a single stream carrying the pointwise sum
// (multiset union) of both. Linear.
func (s Stream[T]) Concat(other Stream[T]) Stream[T] {
	s.b.checkOpen()
	id := s.b.g.addOperator(&concatOp{base: newBase(0, `concat`, 2, 1)})
	s.b.g.connect(s.op, s.port, id, 0)
	s.b.g.connect(other.op, other.port, id, 1)
	return Stream[T]{b: s.b, op: id, port: 0}
}

// Consolidate guarantees exactly one DataBatch per closed version
// downstream, physically merging whatever batches arrived for that version
// and dropping any whose net multiplicity is zero. It is the only operator
// in the module making that guarantee; every other operator may emit
// several batches at the same version.
func (s Stream[T]) Consolidate() Stream[T] {
	s.b.checkOpen()
	id := s.b.g.addOperator(&consolidateOp{base: newBase(0, `consolidate`, 1, 1)})
	s.b.g.connect(s.op, s.port, id, 0)
	return Stream[T]{b: s.b, op: id, port: 0}
}

// Debug tees every record that passes through to the Builder's logger,
// tagged with label, and passes the stream through unchanged. It is a
// diagnostic sink, not a transformation: the output stream is identical to
// the input.
func (s Stream[T]) Debug(label string) Stream[T] {
	s.b.checkOpen()
	id := s.b.g.addOperator(&debugOp{base: newBase(0, `debug`, 1, 1), label: label, logger: s.b.g.logger})
	s.b.g.connect(s.op, s.port, id, 0)
	return Stream[T]{b: s.b, op: id, port: 0}
}

// Join pairs, for every key present in both l and r, one output record per
// (left value, right value) combination, with multiplicity
// left_mult * right_mult, incrementally: each incoming delta is joined
// against the opposite side's full indexed history, not recomputed from
// scratch.
func Join[K, V, W comparable](l Stream[collection.KV[K, V]], r Stream[collection.KV[K, W]]) Stream[collection.KV[K, collection.Pair[V, W]]] {
	l.b.checkOpen()
	lErased := Map(l, eraseKV[K, V])
	rErased := Map(r, eraseKV[K, W])
	op := &joinOp{base: newBase(0, `join`, 2, 1)}
	id := l.b.g.addOperator(op)
	l.b.g.connect(lErased.op, lErased.port, id, 0)
	l.b.g.connect(rErased.op, rErased.port, id, 1)
	joined := Stream[collection.KV[any, any]]{b: l.b, op: id, port: 0}
	return Map(joined, func(kv collection.KV[any, any]) collection.KV[K, collection.Pair[V, W]] {
		p := kv.Value.(collection.Pair[any, any])
		return collection.KV[K, collection.Pair[V, W]]{
			Key:   wrapAny[K](kv.Key),
			Value: collection.Pair[V, W]{First: wrapAny[V](p.First), Second: wrapAny[W](p.Second)},
		}
	})
}

// Reduce applies f to the full multiset of values recorded for each key,
// whenever that key's input becomes closed under the input frontier,
// emitting only the difference from whatever this key last produced.
// Non-linear: f sees the whole per-key history, not a single delta.
func Reduce[K, V, R comparable](s Stream[collection.KV[K, V]], f func(key K, values []collection.Entry[V]) []collection.Entry[R]) Stream[collection.KV[K, R]] {
	s.b.checkOpen()
	erased := Map(s, eraseKV[K, V])
	op := &reduceOp{
		base: newBase(0, `reduce`, 1, 1),
		fn: func(key any, values []collection.Entry[any]) []collection.Entry[any] {
			typed := make([]collection.Entry[V], len(values))
			for i, e := range values {
				typed[i] = collection.Entry[V]{Record: wrapAny[V](e.Record), Multiplicity: e.Multiplicity}
			}
			out := f(wrapAny[K](key), typed)
			res := make([]collection.Entry[any], len(out))
			for i, e := range out {
				res[i] = collection.Entry[any]{Record: toAny(e.Record), Multiplicity: e.Multiplicity}
			}
			return res
		},
		lastEmitted: make(map[any][]collection.Entry[any]),
	}
	id := s.b.g.addOperator(op)
	s.b.g.connect(erased.op, erased.port, id, 0)
	return Map(Stream[collection.KV[any, any]]{b: s.b, op: id, port: 0}, restoreKV[K, R])
}

// Count replaces each key's values with the net count (total multiplicity)
// of values recorded under that key.
func Count[K, V comparable](s Stream[collection.KV[K, V]]) Stream[collection.KV[K, int64]] {
	return Reduce(s, func(_ K, values []collection.Entry[V]) []collection.Entry[int64] {
		var total int64
		for _, e := range values {
			total += e.Multiplicity
		}
		if total == 0 {
			return nil
		}
		return []collection.Entry[int64]{{Record: total, Multiplicity: 1}}
	})
}

// Sum replaces each key's values with the sum of value*multiplicity
// recorded under that key.
func Sum[K comparable, V collection.Summable](s Stream[collection.KV[K, V]]) Stream[collection.KV[K, V]] {
	return Reduce(s, func(_ K, values []collection.Entry[V]) []collection.Entry[V] {
		var total V
		for _, e := range values {
			total += e.Record * V(e.Multiplicity)
		}
		return []collection.Entry[V]{{Record: total, Multiplicity: 1}}
	})
}

// Distinct replaces each key's values with exactly the values that have
// positive net multiplicity, each at multiplicity 1.
func Distinct[K, V comparable](s Stream[collection.KV[K, V]]) Stream[collection.KV[K, V]] {
	return Reduce(s, func(_ K, values []collection.Entry[V]) []collection.Entry[V] {
		totals := make(map[V]int64, len(values))
		for _, e := range values {
			totals[e.Record] += e.Multiplicity
		}
		var out []collection.Entry[V]
		for v, m := range totals {
			if m > 0 {
				out = append(out, collection.Entry[V]{Record: v, Multiplicity: 1})
			}
		}
		return out
	})
}

// Iterate runs body repeatedly over s's growing output until it reaches a
// fixpoint within each outer version, wiring the classic
// ingress/body/feedback/egress quartet (spec.md section 4.9): ingress lifts
// s into the inner (arity+1) version space, feedback re-circulates body's
// output at an incremented inner coordinate, and egress projects the
// converged result back down to the outer version space.
func Iterate[T comparable](b *Builder, s Stream[T], body func(Stream[T]) Stream[T]) Stream[T] {
	b.checkOpen()

	ingressID := b.g.addOperator(&ingressOp{base: newBase(0, `ingress`, 1, 1)})
	b.g.connect(s.op, s.port, ingressID, 0)

	// The concat (loop-merge) operator's second input (the feedback edge)
	// does not exist yet; it is wired after body runs. Reserve the
	// operator now so loopStream can reference a stable id.
	concatID := b.g.addOperator(&concatOp{base: newBase(0, `iterate-concat`, 2, 1)})
	b.g.connect(ingressID, 0, concatID, 0)

	loopStream := Stream[T]{b: b, op: concatID, port: 0}
	bodyOut := body(loopStream)

	feedbackID := b.g.addOperator(&feedbackOp{base: newBase(0, `feedback`, 1, 1)})
	b.g.connect(bodyOut.op, bodyOut.port, feedbackID, 0)
	b.g.connect(feedbackID, 0, concatID, 1)

	egressID := b.g.addOperator(&egressOp{base: newBase(0, `egress`, 1, 1)})
	b.g.connect(bodyOut.op, bodyOut.port, egressID, 0)

	return Stream[T]{b: b, op: egressID, port: 0}
}

// Sink attaches a terminal observer to s: onData is called for every
// DataBatch (with records cast back to T) and onFrontier for every Frontier
// message s's producer emits. Either callback may be nil. Sink returns no
// further Stream: it is a leaf, used by hosts (and tests) that need to read
// a stream's output rather than feed it into more operators.
func Sink[T comparable](s Stream[T], onData func(v version.Version, c collection.Collection[T]), onFrontier func(a version.Antichain)) {
	s.b.checkOpen()
	op := &sinkOp{
		base: newBase(0, `sink`, 1, 0),
		fn: func(m message) {
			switch m.kind {
			case msgData:
				if onData != nil {
					onData(m.version, castCollection[T](m.delta))
				}
			case msgFrontier:
				if onFrontier != nil {
					onFrontier(m.frontier)
				}
			}
		},
	}
	id := s.b.g.addOperator(op)
	s.b.g.connect(s.op, s.port, id, 0)
}

// isClosed reports whether v will no longer receive input under frontier:
// true once frontier has advanced strictly past v.
func isClosed(v version.Version, frontier version.Antichain) bool {
	return !frontier.LessEqualVersion(v)
}
