package dataflow

import (
	"github.com/joeycumines/go-differential/dlog"
)

// Graph is the finalized, runnable dataflow topology: an arena of operators
// and an arena of edges between them, wired purely by integer index (never
// by pointer), so that cyclic iterate subgraphs need no retroactive
// pointer-patching - only an edge id handed to a later connect call.
//
// Graph is not safe for concurrent use; per spec.md section 5 the whole
// runtime is single-threaded.
type Graph struct {
	ops    []operatorImpl
	edges  []edge
	logger dlog.Logger

	finalized bool

	// ready is a round-robin FIFO of operator ids with known-pending work.
	// queued tracks membership so an operator is never enqueued twice,
	// giving every operator with pending input a bounded wait before its
	// next activation (spec.md section 4.4's fairness guarantee).
	ready  []int
	queued []bool
}

func newGraph(logger dlog.Logger) *Graph {
	return &Graph{logger: logger}
}

// addOperator registers op in the arena and returns its stable id.
func (g *Graph) addOperator(op operatorImpl) int {
	id := len(g.ops)
	g.ops = append(g.ops, op)
	g.queued = append(g.queued, false)
	op.(baseHolder).operatorBase().id = id
	return id
}

// connect wires a new edge from an operator's output port to a consumer's
// input slot, returning the edge's id. Calling connect repeatedly with the
// same (producerOp, producerPort) fans the same logical stream out to
// multiple independent consumer edges, each still single-consumer per
// spec.md section 3.
func (g *Graph) connect(producerOp, producerPort, consumerOp, consumerSlot int) int {
	eid := len(g.edges)
	g.edges = append(g.edges, edge{consumer: consumerOp, inputSlot: consumerSlot})
	g.outputEdgesOf(producerOp, producerPort, eid)
	g.inputEdgeOf(consumerOp, consumerSlot, eid)
	return eid
}

// outputEdgesOf and inputEdgeOf reach into the concrete operator's embedded
// base without a type switch over every operator kind: every operatorImpl
// is required to embed *base, exposed through the baseHolder interface.
func (g *Graph) outputEdgesOf(opID, port, eid int) {
	b := g.ops[opID].(baseHolder).operatorBase()
	b.outputEdges[port] = append(b.outputEdges[port], eid)
}

func (g *Graph) inputEdgeOf(opID, slot, eid int) {
	b := g.ops[opID].(baseHolder).operatorBase()
	b.inputEdges[slot] = eid
}

// baseHolder is implemented implicitly by every concrete operator type via
// an exported-within-package accessor, giving the graph arena non-generic
// access to the shared bookkeeping in base.
type baseHolder interface {
	operatorBase() *base
}

// markReady enqueues opID for activation if it is not already queued.
func (g *Graph) markReady(opID int) {
	if g.queued[opID] {
		return
	}
	g.queued[opID] = true
	g.ready = append(g.ready, opID)
}

// Step runs one quantum of work: it activates the single longest-waiting
// operator that has pending input, draining whatever is queued on that
// operator's edges. It returns true if an operator was activated, false if
// the graph is fully quiescent (no operator has pending input).
//
// The host drives computation by calling Step in a loop, normally after
// feeding new data/frontiers through one or more Writers, until Step
// returns false. Nontermination is the caller's concern: an Iterate whose
// body keeps producing new deltas every round (for example one with no
// Distinct or Consolidate on its feedback path) keeps Step returning true
// indefinitely, and the runtime cannot detect this.
func (g *Graph) Step() bool {
	if !g.finalized {
		contractViolation(ErrGraphNotFinalized, `Step called before Finalize`)
	}
	if len(g.ready) == 0 {
		return false
	}
	opID := g.ready[0]
	g.ready = g.ready[1:]
	g.queued[opID] = false
	g.ops[opID].step(g)
	return true
}

// Run calls Step until the graph is quiescent, returning the number of
// activations performed. Useful for tests and for hosts that want to drain
// a graph fully after each batch of input rather than driving Step by hand.
func (g *Graph) Run() int {
	n := 0
	for g.Step() {
		n++
	}
	return n
}
