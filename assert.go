package dscheck

import (
	"fmt"
	"os"
)

// Check evaluates pred against the current run's state. A false result is an
// assertion violation: the checker reports the violating run's trace to
// standard output and stops immediately — there is no retry and no further
// exploration once a violation is found.
//
// pred is expected to read atomic cells with Peek, not Get/Set, since it runs
// outside any traced process and must not itself generate a schedule step.
func (ex *Explorer) Check(pred func() bool) {
	if pred() {
		return
	}

	trace := renderTrace(ex.currentRunID, ex.reg.count(), ex.currentSchedule)
	fmt.Fprintf(os.Stdout, "Found assertion violation at run %d:\n%s", ex.currentRunID, trace)

	panic(&AssertionViolationError{
		RunID: ex.currentRunID,
		Trace: trace,
	})
}
