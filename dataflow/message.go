package dataflow

import (
	"github.com/joeycumines/go-differential/collection"
	"github.com/joeycumines/go-differential/version"
)

// messageKind tags the two wire-message shapes an edge can carry.
type messageKind int

const (
	msgData messageKind = iota
	msgFrontier
)

// message is either a DataBatch(version, change-collection) or a
// Frontier(antichain), per spec.md section 2. Records are carried as `any`
// internally; the typed Stream[T] DSL performs the type assertions at its
// boundary so the runtime itself stays record-type agnostic (design note,
// spec.md section 9: "polymorphism of streams").
type message struct {
	kind     messageKind
	version  version.Version
	delta    collection.Collection[any]
	frontier version.Antichain
}

func dataMessage(v version.Version, delta collection.Collection[any]) message {
	return message{kind: msgData, version: v, delta: delta}
}

func frontierMessage(a version.Antichain) message {
	return message{kind: msgFrontier, frontier: a}
}

// edge is an ordered, FIFO queue of messages between exactly one producer
// operator (port) and exactly one consumer operator (input slot). The graph
// owns every edge, per spec.md section 3's ownership rule.
type edge struct {
	queue     []message
	consumer  int // operator id
	inputSlot int // which of the consumer's inputs this edge feeds
}

func (e *edge) push(m message) {
	e.queue = append(e.queue, m)
}

// drain removes and returns all currently queued messages (a bounded prefix in
// the sense that it's exactly what's arrived since the last drain - the
// scheduler never lets a single activation run unbounded work beyond what
// was already enqueued, since an operator only enqueues finitely many
// outputs per input message per the finite-response property).
func (e *edge) drain() []message {
	if len(e.queue) == 0 {
		return nil
	}
	out := e.queue
	e.queue = nil
	return out
}

func (e *edge) hasPending() bool {
	return len(e.queue) > 0
}
