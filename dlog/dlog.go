package dlog

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

type (
	// Logger is the structured logger every dataflow component accepts
	// (optionally) at construction time. The zero value is a disabled
	// logger: every call is a cheap no-op, matching logiface's contract
	// that an Event implementation's zero value must report
	// LevelDisabled.
	Logger struct {
		l *logiface.Logger[*stumpy.Event]
	}

	// Option configures a Logger constructed via New.
	Option func(*config)

	config struct {
		writer io.Writer
		level  logiface.Level
	}
)

// New builds a Logger writing newline-delimited JSON via stumpy. With no
// options, it logs at Informational level to os.Stderr (stumpy's default
// writer).
func New(opts ...Option) Logger {
	c := config{level: logiface.LevelInformational}
	for _, o := range opts {
		o(&c)
	}

	var stumpyOpts []stumpy.Option
	if c.writer != nil {
		stumpyOpts = append(stumpyOpts, stumpy.WithWriter(c.writer))
	}

	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpyOpts...),
		stumpy.L.WithLevel(c.level),
	)
	return Logger{l: l}
}

// WithWriter directs log output at w instead of stumpy's default
// (os.Stderr).
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.writer = w }
}

// WithLevel sets the minimum level that will be logged. Defaults to
// Informational.
func WithLevel(level logiface.Level) Option {
	return func(c *config) { c.level = level }
}

// Enabled reports whether this Logger will produce any output at all. A
// disabled (zero-value) Logger short-circuits before building field
// strings, the same "cheap when off" guarantee logiface gives every caller.
func (l Logger) Enabled() bool {
	return l.l != nil && l.l.Level() != logiface.LevelDisabled
}

// FrontierAdvanced records an operator's input or output frontier advancing.
func (l Logger) FrontierAdvanced(component string, edge string, frontier string) {
	if l.l == nil {
		return
	}
	l.l.Info().
		Str(`component`, component).
		Str(`edge`, edge).
		Str(`frontier`, frontier).
		Log(`frontier advanced`)
}

// BatchEmitted records an operator emitting a DataBatch.
func (l Logger) BatchEmitted(component string, version string, size int) {
	if l.l == nil {
		return
	}
	l.l.Debug().
		Str(`component`, component).
		Str(`version`, version).
		Int(`records`, size).
		Log(`batch emitted`)
}

// Consolidated records a trace's ConsolidateUpTo dropping or merging
// entries.
func (l Logger) Consolidated(component string, frontier string, before, after int) {
	if l.l == nil {
		return
	}
	l.l.Debug().
		Str(`component`, component).
		Str(`frontier`, frontier).
		Int(`before`, before).
		Int(`after`, after).
		Log(`trace consolidated`)
}

// FixpointReached records an iterate subgraph's body converging for a given
// outer version.
func (l Logger) FixpointReached(outerVersion string, innerSteps int) {
	if l.l == nil {
		return
	}
	l.l.Info().
		Str(`outer_version`, outerVersion).
		Int(`inner_steps`, innerSteps).
		Log(`iterate fixpoint reached`)
}

// Debug emits a debug()-operator record for a single (record, multiplicity)
// pair at a given version, the sink named explicitly by spec.md section 6.
func (l Logger) Debug(label string, version string, record any, mult int64) {
	if l.l == nil {
		return
	}
	l.l.Info().
		Str(`label`, label).
		Str(`version`, version).
		Any(`record`, record).
		Int64(`mult`, mult).
		Log(`debug`)
}
