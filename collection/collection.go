package collection

// Entry pairs a record with its multiplicity in a Collection.
type Entry[T comparable] struct {
	Record       T
	Multiplicity int64
}

// Collection is a multiset over records of type T: an unordered mapping from
// record to nonzero multiplicity. Equality is semantic (Equal), not
// structural. The zero value is the empty collection.
type Collection[T comparable] struct {
	entries map[T]int64
}

// New builds a Collection from entries, summing duplicate records and
// dropping any whose net multiplicity is zero.
func New[T comparable](entries ...Entry[T]) Collection[T] {
	var c Collection[T]
	for _, e := range entries {
		c.add(e.Record, e.Multiplicity)
	}
	return c
}

func (c *Collection[T]) add(record T, mult int64) {
	if mult == 0 {
		return
	}
	if c.entries == nil {
		c.entries = make(map[T]int64)
	}
	n := c.entries[record] + mult
	if n == 0 {
		delete(c.entries, record)
	} else {
		c.entries[record] = n
	}
}

// Len returns the number of distinct records with nonzero multiplicity.
func (c Collection[T]) Len() int {
	return len(c.entries)
}

// Get returns the multiplicity of record (0 if absent).
func (c Collection[T]) Get(record T) int64 {
	return c.entries[record]
}

// Entries returns every (record, multiplicity) pair, multiplicity never
// zero. Order is unspecified.
func (c Collection[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, len(c.entries))
	for r, m := range c.entries {
		out = append(out, Entry[T]{Record: r, Multiplicity: m})
	}
	return out
}

// ForEach calls f for every (record, multiplicity) pair.
func (c Collection[T]) ForEach(f func(record T, mult int64)) {
	for r, m := range c.entries {
		f(r, m)
	}
}

// Equal reports whether c and other yield the same multiplicity for every
// record.
func (c Collection[T]) Equal(other Collection[T]) bool {
	if c.Len() != other.Len() {
		return false
	}
	for r, m := range c.entries {
		if other.entries[r] != m {
			return false
		}
	}
	return true
}

// Concat returns the pointwise sum of c and other, dropping any record whose
// net multiplicity is zero. This is the addition operation of the module: a
// multiset sum, not sequence concatenation.
func Concat[T comparable](c, other Collection[T]) Collection[T] {
	r := Collection[T]{entries: make(map[T]int64, c.Len()+other.Len())}
	for rec, m := range c.entries {
		r.add(rec, m)
	}
	for rec, m := range other.entries {
		r.add(rec, m)
	}
	return r
}

// Negate returns c with every multiplicity's sign flipped.
func Negate[T comparable](c Collection[T]) Collection[T] {
	r := Collection[T]{entries: make(map[T]int64, c.Len())}
	for rec, m := range c.entries {
		r.entries[rec] = -m
	}
	return r
}

// Map applies f to every record, summing multiplicities of records that
// collide under f. Linear: Map(f, Concat(a,b)) == Concat(Map(f,a), Map(f,b)).
func Map[T, U comparable](c Collection[T], f func(T) U) Collection[U] {
	var r Collection[U]
	for rec, m := range c.entries {
		r.add(f(rec), m)
	}
	return r
}

// Filter keeps only records for which p returns true. Linear.
func Filter[T comparable](c Collection[T], p func(T) bool) Collection[T] {
	r := Collection[T]{entries: make(map[T]int64, c.Len())}
	for rec, m := range c.entries {
		if p(rec) {
			r.entries[rec] = m
		}
	}
	return r
}

// Consolidate returns a copy of c with zero-multiplicity entries dropped and
// duplicate records merged. Because Collection never stores zero entries or
// duplicate keys internally, this is the identity function; it exists so
// callers that build up entries via lower-level primitives (e.g. a
// trace's reconstruction) can call it as a final, explicit step.
func Consolidate[T comparable](c Collection[T]) Collection[T] {
	return Concat(c, Collection[T]{})
}

// KV is a key/value pair record, used by the key-aware multiset operations
// below (map_key_value, reduce_per_key, count, sum, distinct, join).
type KV[K, V comparable] struct {
	Key   K
	Value V
}

// MapKeyValue projects every record of c into a (key, value) pair,
// summing multiplicities of records that collide. Linear, since it is Map
// under the hood.
func MapKeyValue[T comparable, K, V comparable](c Collection[T], f func(T) (K, V)) Collection[KV[K, V]] {
	return Map(c, func(t T) KV[K, V] {
		k, v := f(t)
		return KV[K, V]{Key: k, Value: v}
	})
}

// valuesForKey groups (value, multiplicity) pairs by key, only for the keys
// present in c.
func valuesForKey[K, V comparable](c Collection[KV[K, V]]) map[K][]Entry[V] {
	out := make(map[K][]Entry[V])
	for rec, m := range c.entries {
		out[rec.Key] = append(out[rec.Key], Entry[V]{Record: rec.Value, Multiplicity: m})
	}
	return out
}

// ReducePerKey applies f to the full set of (value, multiplicity) pairs for
// each distinct key in c, producing zero or more (key, result) pairs. Unlike
// Map/Filter/Concat/Negate, this is NOT linear: f sees the whole per-key
// multiset, not a single record, so it must be recomputed whenever any
// value for that key changes rather than combined from partial results.
func ReducePerKey[K, V, R comparable](c Collection[KV[K, V]], f func(key K, values []Entry[V]) []Entry[R]) Collection[KV[K, R]] {
	var out Collection[KV[K, R]]
	for k, values := range valuesForKey(c) {
		for _, e := range f(k, values) {
			out.add(KV[K, R]{Key: k, Value: e.Record}, e.Multiplicity)
		}
	}
	return out
}

// Count replaces each key's values with a single record: the net
// multiplicity (i.e. total count) of values under that key, as long as it is
// nonzero.
func Count[K, V comparable](c Collection[KV[K, V]]) Collection[KV[K, int64]] {
	return ReducePerKey(c, func(_ K, values []Entry[V]) []Entry[int64] {
		var total int64
		for _, e := range values {
			total += e.Multiplicity
		}
		if total == 0 {
			return nil
		}
		return []Entry[int64]{{Record: total, Multiplicity: 1}}
	})
}

// Summable is the constraint Sum requires of its value type: integer or
// floating point, the minimal requirement to add values together. This is
// intentionally narrow (no numerical library dependency) -- Sum is plain
// arithmetic, not statistics.
type Summable interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum replaces each key's values with a single record: the sum of
// values * multiplicity under that key, as long as the net multiplicity of
// that sum is nonzero (it always is, with multiplicity 1, unless there are
// no values for the key at all).
func Sum[K comparable, V Summable](c Collection[KV[K, V]]) Collection[KV[K, V]] {
	return ReducePerKey(c, func(_ K, values []Entry[V]) []Entry[V] {
		var total V
		for _, e := range values {
			total += e.Record * V(e.Multiplicity)
		}
		return []Entry[V]{{Record: total, Multiplicity: 1}}
	})
}

// Distinct replaces each key's values with exactly the values that have
// positive net multiplicity, each at multiplicity 1.
func Distinct[K, V comparable](c Collection[KV[K, V]]) Collection[KV[K, V]] {
	return ReducePerKey(c, func(_ K, values []Entry[V]) []Entry[V] {
		totals := make(map[V]int64, len(values))
		for _, e := range values {
			totals[e.Record] += e.Multiplicity
		}
		var out []Entry[V]
		for v, m := range totals {
			if m > 0 {
				out = append(out, Entry[V]{Record: v, Multiplicity: 1})
			}
		}
		return out
	})
}

// Join returns, for every key present in both l and r, one record per
// (left value, right value) pair, with multiplicity left_mult * right_mult.
func Join[K, V, W comparable](l Collection[KV[K, V]], r Collection[KV[K, W]]) Collection[KV[K, Pair[V, W]]] {
	lByKey := valuesForKey(l)
	rByKey := valuesForKey(r)
	var out Collection[KV[K, Pair[V, W]]]
	for k, lvs := range lByKey {
		rvs, ok := rByKey[k]
		if !ok {
			continue
		}
		for _, lv := range lvs {
			for _, rv := range rvs {
				out.add(KV[K, Pair[V, W]]{Key: k, Value: Pair[V, W]{First: lv.Record, Second: rv.Record}}, lv.Multiplicity*rv.Multiplicity)
			}
		}
	}
	return out
}

// Pair is a simple two-element tuple, used for join output values.
type Pair[A, B comparable] struct {
	First  A
	Second B
}
