package dataflow

import "github.com/joeycumines/go-differential/collection"

// filterOp keeps only records for which pred holds, forwarding the result
// at the same version. Stateless and linear.
type filterOp struct {
	base
	pred func(any) bool
}

func (o *filterOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.emit(g, 0, m.version, collection.Filter(m.delta, o.pred))
		case msgFrontier:
			o.emitFrontier(g, 0, m.frontier)
		}
	}
}
