// Package collection implements Collection, the in-memory multiset over
// arbitrary hashable records with signed multiplicities that every
// dataflow operator computes on. A multiplicity of zero is indistinguishable
// from absence: Collection never stores zero entries.
package collection
