package dataflow

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
)

// inputOp is a pure source: it has no input edges of its own. A Writer
// pushes directly onto its output port's fan-out edges; step is never
// invoked by the scheduler's normal pending-input path since an input
// operator never has anything queued on an input slot, but it still
// implements operatorImpl so it can live in the same arena as every other
// operator kind.
type inputOp struct {
	base
}

func (o *inputOp) step(g *Graph) {}

// Writer is the host-facing handle for feeding data and frontier advances
// into an opened input. Per spec.md section 6, every send must respect two
// contracts: SendData's version must not be strictly behind the frontier
// already sent, and SendFrontier must advance monotonically. Both
// violations panic with a ContractError, matching the rest of the module's
// fail-loudly convention.
type Writer[T comparable] struct {
	g      *Graph
	op     int
	arity  int
	front  version.Antichain
	closed bool
}

// NewInput opens a new source in b, of the given version arity (the number
// of coordinates every version sent through this Writer must have), and
// returns a Stream handle onto its output alongside the Writer used to
// drive it.
func NewInput[T comparable](b *Builder, arity int) (Stream[T], *Writer[T]) {
	b.checkOpen()
	id := b.g.addOperator(&inputOp{base: newBase(0, `input`, 0, 1)})
	w := &Writer[T]{
		g:     b.g,
		op:    id,
		arity: arity,
		front: version.NewAntichain(version.Zero(arity)),
	}
	return Stream[T]{b: b, op: id, port: 0}, w
}

// SendData introduces a batch of changes at version v. v must be at or
// ahead of some version in the frontier last sent via SendFrontier (the
// initial frontier is the all-zero version of this Writer's arity).
func (w *Writer[T]) SendData(v version.Version, data collection.Collection[T]) {
	if w.closed {
		contractViolation(ErrWriterClosed, `SendData on a writer whose frontier already reached the empty (terminal) antichain`)
	}
	if !w.front.LessEqualVersion(v) {
		contractViolation(ErrVersionNotAdvanced, `SendData(%s) is behind the last frontier %s`, v, w.front)
	}
	b := w.g.ops[w.op].(baseHolder).operatorBase()
	b.emit(w.g, 0, v, eraseCollection(data))
}

// SendFrontier advances this Writer's frontier to a. a must describe a
// frontier at least as advanced as the one last sent (new >= old, i.e.
// old.LessEqual(new)). Sending the empty antichain permanently closes this
// Writer: no further sends of any kind are permitted.
func (w *Writer[T]) SendFrontier(a version.Antichain) {
	if w.closed {
		contractViolation(ErrWriterClosed, `SendFrontier on a writer whose frontier already reached the empty (terminal) antichain`)
	}
	if !w.front.LessEqual(a) {
		contractViolation(ErrNonMonotoneFrontier, `SendFrontier(%s) does not advance past %s`, a, w.front)
	}
	w.front = a.Clone()
	b := w.g.ops[w.op].(baseHolder).operatorBase()
	b.emitFrontier(w.g, 0, a)
	if a.IsEmpty() {
		w.closed = true
	}
}
