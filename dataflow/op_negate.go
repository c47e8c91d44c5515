package dataflow

import "github.com/joeycumines/go-differential/collection"

// negateOp flips the sign of every record's multiplicity, forwarding the
// result at the same version. Stateless and linear; combined with Concat
// this expresses retraction.
type negateOp struct {
	base
}

func (o *negateOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.emit(g, 0, m.version, collection.Negate(m.delta))
		case msgFrontier:
			o.emitFrontier(g, 0, m.frontier)
		}
	}
}
