package dataflow

import (
	"strconv"

	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
)

// operatorImpl is the non-generic interface every concrete operator
// implements. Per the design note in spec.md section 9 ("a stream is
// polymorphic over the element type; operators are tagged variants"), the
// type parameters of map/filter/join/etc are erased at this boundary: the
// scheduler dispatches on this interface alone, never on a concrete
// operator type.
type operatorImpl interface {
	// step performs one bounded quantum of work: drain whatever is
	// currently queued on this operator's input edges, update state, and
	// emit any resulting output messages. Must have finite response: a
	// finite input backlog produces a finite number of output messages.
	step(g *Graph)
	name() string
}

// base is embedded by every concrete operator, providing the bookkeeping
// (input edges, per-input frontiers, output edges) spec.md section 4.4
// requires of every operator, and the emit helpers concrete operators use
// to produce output without touching Graph internals directly.
type base struct {
	id          int
	kind        string
	numInputs   int
	inputEdges  []int // edge id per input slot, -1 if not yet wired
	inputFront  []version.Antichain
	outputEdges [][]int // edge ids per output port (fan-out)
}

func newBase(id int, kind string, numInputs, numOutputs int) base {
	inputEdges := make([]int, numInputs)
	for i := range inputEdges {
		inputEdges[i] = -1
	}
	inputFront := make([]version.Antichain, numInputs)
	for i := range inputFront {
		// placeholder until the first real frontier arrives: the empty
		// antichain, not the bottom frontier. Operators that combine input
		// frontiers (concat, join) track with their own seen flags whether
		// a slot has reported a frontier yet.
		inputFront[i] = version.Antichain{}
	}
	return base{
		id:          id,
		kind:        kind,
		numInputs:   numInputs,
		inputEdges:  inputEdges,
		inputFront:  inputFront,
		outputEdges: make([][]int, numOutputs),
	}
}

func (b *base) name() string { return b.kind }

// operatorBase implements baseHolder, promoted to any type embedding base,
// giving Graph arena-level access to the shared wiring bookkeeping without
// a type switch over every concrete operator kind.
func (b *base) operatorBase() *base { return b }

// emit pushes a DataBatch to every edge fanning out from output port.
func (b *base) emit(g *Graph, port int, v version.Version, c collection.Collection[any]) {
	if c.Len() == 0 {
		return
	}
	for _, eid := range b.outputEdges[port] {
		g.edges[eid].push(dataMessage(v, c))
		g.markReady(g.edges[eid].consumer)
	}
	g.logger.BatchEmitted(b.kind, v.String(), c.Len())
}

// emitFrontier pushes a Frontier message to every edge fanning out from
// output port, and schedules each consumer for activation.
func (b *base) emitFrontier(g *Graph, port int, a version.Antichain) {
	for _, eid := range b.outputEdges[port] {
		g.edges[eid].push(frontierMessage(a))
		g.markReady(g.edges[eid].consumer)
	}
	g.logger.FrontierAdvanced(b.kind, portLabel(port), a.String())
}

func portLabel(port int) string {
	if port == 0 {
		return `out`
	}
	return `out` + strconv.Itoa(port)
}

// drainInput returns every message queued on input slot, in FIFO order.
func (b *base) drainInput(g *Graph, slot int) []message {
	eid := b.inputEdges[slot]
	if eid < 0 {
		return nil
	}
	return g.edges[eid].drain()
}

// hasPendingInput reports whether any input edge has queued messages.
func (b *base) hasPendingInput(g *Graph) bool {
	for _, eid := range b.inputEdges {
		if eid >= 0 && g.edges[eid].hasPending() {
			return true
		}
	}
	return false
}
