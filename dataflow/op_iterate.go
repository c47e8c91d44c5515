package dataflow

import "github.com/joeycumines/go-differential/version"

// ingressOp lifts a stream one arity level into an iterate subgraph's inner
// version space: every version gains a trailing zero coordinate
// (version.Extend), the new loop-local iteration counter.
type ingressOp struct {
	base
}

func (o *ingressOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.emit(g, 0, version.Extend(m.version), m.delta)
		case msgFrontier:
			o.emitFrontier(g, 0, m.frontier.Extend())
		}
	}
}

// egressOp projects an iterate subgraph's body output back down to the
// outer version space: every version drops its trailing (inner) coordinate
// (version.Truncate).
type egressOp struct {
	base
}

func (o *egressOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.emit(g, 0, version.Truncate(m.version), m.delta)
		case msgFrontier:
			o.emitFrontier(g, 0, m.frontier.Truncate())
		}
	}
}

// feedbackOp re-circulates an iterate body's output into the next inner
// round: every data batch is relabeled at the next inner step
// (version.IncrementLast) and sent back to the loop's concat operator.
//
// Frontier handling is what makes a converging loop body actually reach
// quiescence: feedbackOp only advances (increments) the frontier it sends
// back when new data has actually flowed through the loop since the last
// time it did so. Once the body stops producing anything new for the
// current outer version (the usual shape of a monotone fixpoint
// computation, e.g. one that uses Distinct to collapse re-derivations),
// the next frontier it forwards is identical to the one it received;
// iterate-concat's own dedupe then stops re-emitting, and the subgraph goes
// quiet. A non-converging loop body (spec.md's scenario without
// consolidate/distinct) keeps producing data every round, so this keeps
// incrementing forever - by design, not a bug: such a loop is only ever
// meant to be driven a bounded number of Step calls, never run to
// quiescence.
type feedbackOp struct {
	base
	sawData      bool
	forwardedOne bool
}

func (o *feedbackOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.sawData = true
			o.emit(g, 0, version.IncrementLast(m.version), m.delta)
		case msgFrontier:
			if o.sawData || !o.forwardedOne {
				o.emitFrontier(g, 0, incrementAntichain(m.frontier))
				o.sawData = false
			} else {
				o.emitFrontier(g, 0, m.frontier)
			}
			o.forwardedOne = true
		}
	}
}

func incrementAntichain(a version.Antichain) version.Antichain {
	var r version.Antichain
	for _, e := range a.Elements() {
		r.Insert(version.IncrementLast(e))
	}
	return r
}
