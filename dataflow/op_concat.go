package dataflow

import "github.com/joeycumines/go-differential/version"

// concatOp merges two streams of the same record type into one, forwarding
// data unchanged and combining frontiers: the merged frontier is the meet
// of both inputs' frontiers (combineTwoFrontiers), not the join - a version
// can still receive output from whichever input is further behind even
// after the other has closed it. Stateless w.r.t. data; only the
// last-seen per-input frontier is kept.
type concatOp struct {
	base
	seen    [2]bool
	lastOut version.Antichain
	haveOut bool
}

func (o *concatOp) step(g *Graph) {
	for slot := 0; slot < 2; slot++ {
		for _, m := range o.drainInput(g, slot) {
			switch m.kind {
			case msgData:
				o.emit(g, 0, m.version, m.delta)
			case msgFrontier:
				o.inputFront[slot] = m.frontier
				o.seen[slot] = true
			}
		}
	}
	combined, ok := combineTwoFrontiers(o.seen[0], o.inputFront[0], o.seen[1], o.inputFront[1])
	if !ok {
		return
	}
	if o.haveOut && combined.Equal(o.lastOut) {
		return
	}
	o.lastOut, o.haveOut = combined, true
	o.emitFrontier(g, 0, combined)
}
