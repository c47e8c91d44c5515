package version

import (
	"fmt"
	"strings"
)

// Version is a tuple of nonnegative integers, ordered by the product partial
// order. Arity (len) is not fixed at the type level because iterate extends
// and truncates it at runtime; within a single dataflow, every version that
// reaches a given edge must share the same arity, or the operations below
// panic.
//
// Version values are treated as immutable by every operation in this
// package and in the rest of the module: New and the derived constructors
// always return a fresh slice.
type Version []uint64

// New returns a Version with the given coordinates.
func New(coords ...uint64) Version {
	v := make(Version, len(coords))
	copy(v, coords)
	return v
}

// Zero returns the bottom version of the given arity (all coordinates 0).
func Zero(arity int) Version {
	return make(Version, arity)
}

func checkArity(u, v Version) {
	if len(u) != len(v) {
		panic(fmt.Errorf(`version: mismatched arity: %d vs %d`, len(u), len(v)))
	}
}

// Equal reports whether u and v have identical coordinates.
func Equal(u, v Version) bool {
	if len(u) != len(v) {
		return false
	}
	for i := range u {
		if u[i] != v[i] {
			return false
		}
	}
	return true
}

// LessEqual reports whether u <= v under the product partial order:
// every coordinate of u is <= the corresponding coordinate of v.
func LessEqual(u, v Version) bool {
	checkArity(u, v)
	for i := range u {
		if u[i] > v[i] {
			return false
		}
	}
	return true
}

// LessThan reports whether u <= v and u != v.
func LessThan(u, v Version) bool {
	return LessEqual(u, v) && !Equal(u, v)
}

// Join returns the least upper bound of u and v: the componentwise maximum.
func Join(u, v Version) Version {
	checkArity(u, v)
	r := make(Version, len(u))
	for i := range u {
		if u[i] >= v[i] {
			r[i] = u[i]
		} else {
			r[i] = v[i]
		}
	}
	return r
}

// MeetVersion returns the greatest lower bound of u and v: the componentwise
// minimum. (Meet, in antichain.go, is the antichain-level meet.)
func MeetVersion(u, v Version) Version {
	checkArity(u, v)
	r := make(Version, len(u))
	for i := range u {
		if u[i] <= v[i] {
			r[i] = u[i]
		} else {
			r[i] = v[i]
		}
	}
	return r
}

// Extend appends a trailing zero coordinate, raising arity by one. Used by
// ingress to move a version into an iterate subgraph's inner coordinate
// space.
func Extend(v Version) Version {
	r := make(Version, len(v)+1)
	copy(r, v)
	return r
}

// Truncate drops the trailing coordinate, lowering arity by one. Panics if v
// is already arity 0. Used by egress to move a version back out of an
// iterate subgraph.
func Truncate(v Version) Version {
	if len(v) == 0 {
		panic(`version: truncate: arity is already 0`)
	}
	r := make(Version, len(v)-1)
	copy(r, v)
	return r
}

// IncrementLast returns a copy of v with its trailing coordinate incremented
// by one. Panics if v is arity 0. Used by feedback to label a re-circulated
// delta with the next inner iteration step.
func IncrementLast(v Version) Version {
	if len(v) == 0 {
		panic(`version: increment last: arity is 0`)
	}
	r := make(Version, len(v))
	copy(r, v)
	r[len(r)-1]++
	return r
}

// Clone returns an independent copy of v.
func Clone(v Version) Version {
	r := make(Version, len(v))
	copy(r, v)
	return r
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf(`%d`, c)
	}
	return `(` + strings.Join(parts, `,`) + `)`
}
