package dataflow

import "github.com/joeycumines/go-differential/collection"

// mapOp applies fn to every record of every incoming batch, forwarding the
// result at the same version. Stateless and linear: it never needs to
// remember anything across activations.
type mapOp struct {
	base
	fn func(any) any
}

func (o *mapOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.emit(g, 0, m.version, collection.Map(m.delta, o.fn))
		case msgFrontier:
			o.emitFrontier(g, 0, m.frontier)
		}
	}
}
