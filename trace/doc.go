// Package trace implements the difference trace: an ordered log of
// (version, delta) pairs that can be summed ("reconstructed") at any target
// version, plus an indexed variant keyed by record key for the operators
// (join, reduce) that must avoid scanning the full history on every
// incoming delta.
//
// Neither Trace nor IndexedTrace eagerly merges entries on Append; physical
// consolidation only happens when ConsolidateUpTo is called with a frontier
// proving it is safe.
package trace
