package dscheck

import (
	"errors"
	"fmt"
)

// ScheduleMismatchError is raised when the run driver dispatches a schedule
// entry whose (op, target) does not match the process's recorded next step.
// This indicates a bug in the checker itself, or a non-deterministic test
// program, never a property of the program under test.
type ScheduleMismatchError struct {
	ProcID   int
	Expected step
	Got      step
}

func (e *ScheduleMismatchError) Error() string {
	return fmt.Sprintf("dscheck: proc %d: scheduled step %s does not match recorded next step %s",
		e.ProcID, e.Got, e.Expected)
}

// NoEnabledProcessesError is raised when a schedule is exhausted but entries
// remain and every process has finished. This is a hard invariant breach in
// the checker: run raises it as a panic value, and only Trace's top-level
// recovery turns it into a returned error.
type NoEnabledProcessesError struct {
	RunID int
}

func (e *NoEnabledProcessesError) Error() string {
	return fmt.Sprintf("dscheck: run %d: no enabled processes but schedule has remaining entries", e.RunID)
}

// AssertionViolationError is the panic value Check raises when its predicate
// is false; Trace recovers it and returns it as its error.
// It carries the rendered interleaving trace that was in effect at the time
// of the failure, so callers (and Trace's top-level reporting) can print it
// without re-deriving it.
type AssertionViolationError struct {
	RunID   int
	Trace   string
	Message string
	Cause   error
}

func (e *AssertionViolationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("dscheck: assertion violation at run %d", e.RunID)
	}
	return fmt.Sprintf("dscheck: assertion violation at run %d: %s", e.RunID, e.Message)
}

// Unwrap returns the underlying cause, if any, for errors.Is/errors.As.
func (e *AssertionViolationError) Unwrap() error {
	return e.Cause
}

// cancelledError is the internal sentinel thrown into a still-parked
// process's continuation when a run ends before it finishes. It satisfies
// error so it can travel through panic/recover and errors.Is, but it is
// recovered and swallowed by the process goroutine (Proc.run) and must never
// escape a run.
type cancelledError struct{}

func (cancelledError) Error() string { return "dscheck: process discontinued" }

// errCancelled is the sentinel value a discontinued process's body must
// observe in order to unwind without reporting a user-visible failure.
var errCancelled error = cancelledError{}

// IsCancelled reports whether err is (or wraps) the internal discontinue
// sentinel. User process bodies generally do not need this: Spawn already
// recovers it for them. It is exported for advanced callers that run their
// own recover logic around a Proc's body.
func IsCancelled(err error) bool {
	return errors.Is(err, errCancelled)
}

// WrapError wraps an error with a message, preserving the cause for
// errors.Is/errors.As via %w.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
