package dataflow

import "github.com/joeycumines/go-differential/dlog"

// debugOp tees every record that passes through to logger, tagged with
// label, then forwards the stream unchanged. Pure side effect; it never
// alters data or frontiers.
type debugOp struct {
	base
	label  string
	logger dlog.Logger
}

func (o *debugOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			if o.logger.Enabled() {
				for _, e := range m.delta.Entries() {
					o.logger.Debug(o.label, m.version.String(), e.Record, e.Multiplicity)
				}
			}
			o.emit(g, 0, m.version, m.delta)
		case msgFrontier:
			o.emitFrontier(g, 0, m.frontier)
		}
	}
}
