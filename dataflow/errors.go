package dataflow

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ContractError, comparable with errors.Is. These
// mirror go-eventloop's ErrLoopAlreadyRunning / ErrReentrantRun convention:
// named, checkable causes backing a panic that's expected to crash the
// process, not be silently recovered from.
var (
	// ErrVersionNotAdvanced is the cause when Writer.SendData is called with
	// a version that is not strictly >= the writer's last-sent frontier.
	ErrVersionNotAdvanced = errors.New(`dataflow: version not advanced past last frontier`)

	// ErrNonMonotoneFrontier is the cause when Writer.SendFrontier is called
	// with an antichain that is not >= the previously sent one.
	ErrNonMonotoneFrontier = errors.New(`dataflow: frontier advance is not monotone`)

	// ErrGraphFinalized is the cause when a builder method is called after
	// Finalize.
	ErrGraphFinalized = errors.New(`dataflow: graph already finalized`)

	// ErrGraphNotFinalized is the cause when Step is called before
	// Finalize.
	ErrGraphNotFinalized = errors.New(`dataflow: graph not finalized`)

	// ErrWriterClosed is the cause when a Writer is used after it sent the
	// empty (terminal) frontier.
	ErrWriterClosed = errors.New(`dataflow: writer already closed`)
)

// ContractError is a ContractViolation per spec.md section 7: a programming
// error (non-monotone frontier, data sent before its version is reachable,
// mutating a finalized graph). The core fails loudly: these are always
// panicked, never returned, the same convention microbatch.NewBatcher and
// catrate.NewLimiter use for invalid construction.
type ContractError struct {
	Cause   error
	Context string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf(`dataflow: contract violation: %s: %s`, e.Cause, e.Context)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}

func contractViolation(cause error, format string, args ...any) {
	panic(&ContractError{Cause: cause, Context: fmt.Sprintf(format, args...)})
}
