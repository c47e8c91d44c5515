package dataflow

import (
	"github.com/joeycumines/go-differential/trace"
	"github.com/joeycumines/go-differential/version"
)

// consolidateOp is the only operator in the module guaranteeing exactly one
// DataBatch per closed version downstream (spec.md section 4.6): it buffers
// every incoming batch in a Trace and, as the input frontier advances,
// physically merges and emits the batches for versions that just closed.
type consolidateOp struct {
	base
	tr       trace.Trace[any]
	emitted  map[string]bool
	lastOut  version.Antichain
	haveOut  bool
}

func (o *consolidateOp) step(g *Graph) {
	for _, m := range o.drainInput(g, 0) {
		switch m.kind {
		case msgData:
			o.tr.Append(m.version, m.delta)
		case msgFrontier:
			o.advance(g, m.frontier)
		}
	}
}

func (o *consolidateOp) advance(g *Graph, f version.Antichain) {
	o.tr.ConsolidateUpTo(f)
	if o.emitted == nil {
		o.emitted = make(map[string]bool)
	}
	for _, e := range o.tr.Entries() {
		vs := e.Version.String()
		if o.emitted[vs] || !isClosed(e.Version, f) {
			continue
		}
		o.emitted[vs] = true
		if e.Delta.Len() > 0 {
			o.emit(g, 0, e.Version, e.Delta)
		}
	}
	if o.haveOut && f.Equal(o.lastOut) {
		return
	}
	o.lastOut, o.haveOut = f, true
	o.emitFrontier(g, 0, f)
}
