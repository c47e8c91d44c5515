package version

import "strings"

// Antichain is a finite set of pairwise-incomparable versions, interpreted
// as a frontier: the set of versions v such that some element of the
// antichain is <= v. The empty antichain denotes the "all versions closed"
// terminal frontier.
//
// The zero value is the empty antichain. Every constructor and mutator in
// this package maintains the invariant that Elements() never contains two
// comparable versions; inputs that violate it are normalized (non-minimal
// elements are dropped), never rejected.
type Antichain struct {
	elems []Version
}

// NewAntichain returns a minimized Antichain containing the given versions.
func NewAntichain(versions ...Version) Antichain {
	var a Antichain
	for _, v := range versions {
		a.Insert(v)
	}
	return a
}

// Elements returns the antichain's minimal elements. The caller must not
// mutate the returned slice or its contents.
func (a Antichain) Elements() []Version {
	return a.elems
}

// IsEmpty reports whether the antichain is empty (the terminal, "fully
// closed" frontier).
func (a Antichain) IsEmpty() bool {
	return len(a.elems) == 0
}

// Insert adds v, dropping it if some existing element already dominates it,
// and removing any existing elements v dominates. Reports whether the
// antichain changed.
func (a *Antichain) Insert(v Version) bool {
	for _, e := range a.elems {
		if LessEqual(e, v) {
			return false
		}
	}
	kept := a.elems[:0:0]
	for _, e := range a.elems {
		if !LessThan(v, e) {
			kept = append(kept, e)
		}
	}
	a.elems = append(kept, Clone(v))
	return true
}

// LessEqualVersion reports whether v is in the frontier described by a:
// some element of a is <= v.
func (a Antichain) LessEqualVersion(v Version) bool {
	for _, e := range a.elems {
		if LessEqual(e, v) {
			return true
		}
	}
	return false
}

// LessEqual reports whether a <= b as frontiers: every element of b is >=
// some element of a, equivalently a's frontier contains b's frontier (a is
// at least as "behind" as b).
func (a Antichain) LessEqual(b Antichain) bool {
	for _, be := range b.elems {
		if !a.LessEqualVersion(be) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b describe the same frontier.
func (a Antichain) Equal(b Antichain) bool {
	return a.LessEqual(b) && b.LessEqual(a)
}

// Meet forms the union of a and b, minimized: the result's frontier is the
// union of the two input frontiers, i.e. the least frontier behind both.
func Meet(a, b Antichain) Antichain {
	r := NewAntichain(a.elems...)
	for _, v := range b.elems {
		r.Insert(v)
	}
	return r
}

// JoinVersions returns the antichain formed by pairwise-joining every
// element of a with every element of b, minimized. A version closed on only
// one of a and b can already be closed on the result (JoinVersions({2}, {3})
// is {3}), so the dataflow operators with two inputs combine their input
// frontiers with Meet, not with this.
func JoinVersions(a, b Antichain) Antichain {
	var r Antichain
	if len(a.elems) == 0 || len(b.elems) == 0 {
		return r
	}
	for _, x := range a.elems {
		for _, y := range b.elems {
			r.Insert(Join(x, y))
		}
	}
	return r
}

// Extend maps Extend over every element and minimizes.
func (a Antichain) Extend() Antichain {
	var r Antichain
	for _, e := range a.elems {
		r.Insert(Extend(e))
	}
	return r
}

// Truncate maps Truncate over every element and minimizes.
func (a Antichain) Truncate() Antichain {
	var r Antichain
	for _, e := range a.elems {
		r.Insert(Truncate(e))
	}
	return r
}

// Clone returns an independent copy of a.
func (a Antichain) Clone() Antichain {
	r := make([]Version, len(a.elems))
	for i, e := range a.elems {
		r[i] = Clone(e)
	}
	return Antichain{elems: r}
}

func (a Antichain) String() string {
	parts := make([]string, len(a.elems))
	for i, e := range a.elems {
		parts[i] = e.String()
	}
	return `{` + strings.Join(parts, `, `) + `}`
}
