package dataflow

import "github.com/joeycumines/go-differential/dlog"

// Builder accumulates operators and edges prior to Finalize. All of the
// Stream[T] methods (Map, Filter, Join, Iterate, ...) are builder-time only:
// once Finalize returns a *Graph, the topology is immutable and only Step
// and the already-opened Writers may be used.
type Builder struct {
	g *Graph
}

// BuilderOption configures a Builder constructed by NewBuilder.
type BuilderOption func(*Graph)

// WithLogger attaches a structured logger the runtime uses to report
// frontier advances, batch emission, and Debug operator records. The
// runtime does not call the logger's Consolidated or FixpointReached
// events.
func WithLogger(l dlog.Logger) BuilderOption {
	return func(g *Graph) { g.logger = l }
}

// NewBuilder returns an empty Builder, ready to accept NewInput calls and
// Stream operator chains.
func NewBuilder(opts ...BuilderOption) *Builder {
	g := newGraph(dlog.Logger{})
	for _, o := range opts {
		o(g)
	}
	return &Builder{g: g}
}

func (b *Builder) checkOpen() {
	if b.g.finalized {
		contractViolation(ErrGraphFinalized, `builder method called after Finalize`)
	}
}

// Finalize seals the topology: no further Stream operator or NewInput calls
// are permitted on this Builder, and the returned Graph's Step method may
// now be called.
func (b *Builder) Finalize() *Graph {
	b.checkOpen()
	b.g.finalized = true
	return b.g
}
