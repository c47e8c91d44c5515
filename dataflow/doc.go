// Package dataflow implements the graph builder and single-threaded
// cooperative runtime: operators, edges, frontier tracking, and a fair
// step scheduler with guaranteed progress on acyclic subgraphs and on
// converging cycles.
//
// The only user-visible surface is the fluent Stream[T] DSL: NewInput opens
// a Writer and a Stream handle; Stream methods (Map, Filter, Negate,
// Concat, Consolidate, Join, Reduce/Count/Sum/Distinct, Iterate, Debug)
// each add one or more operators and return the resulting Stream(s); Sink
// attaches a terminal observer in place of a further Stream.
// Builder.Finalize seals the topology into a Graph, whose Step method the
// host calls repeatedly to drive computation.
package dataflow
