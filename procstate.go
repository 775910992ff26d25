package dscheck

import "sync/atomic"

// procLifecycle is a lock-free state machine tracking a single process's
// position in the parked/running/finished/discontinued lifecycle: a single
// atomic word, transitioned with CompareAndSwap rather than a mutex,
// because the scheduler and the run driver observe it from different
// goroutines around each rendezvous.
type procLifecycle uint32

const (
	// procParked means the process is blocked waiting for the driver to
	// grant it permission to perform its recorded next step.
	procParked procLifecycle = iota
	// procRunning means the driver has granted permission and the process
	// goroutine is executing user code.
	procRunning
	// procFinished means the process's body returned normally.
	procFinished
	// procDiscontinued means the process was cancelled at run end and will
	// not run again.
	procDiscontinued
)

func (s procLifecycle) String() string {
	switch s {
	case procParked:
		return "parked"
	case procRunning:
		return "running"
	case procFinished:
		return "finished"
	case procDiscontinued:
		return "discontinued"
	default:
		return "unknown"
	}
}

// lifecycleState is the atomic holder for a procLifecycle value.
type lifecycleState struct {
	v atomic.Uint32
}

func newLifecycleState() *lifecycleState {
	s := &lifecycleState{}
	s.v.Store(uint32(procParked))
	return s
}

func (s *lifecycleState) load() procLifecycle {
	return procLifecycle(s.v.Load())
}

// tryTransition moves the state from "from" to "to", reporting whether the
// compare-and-swap succeeded. Used at every transition point where the
// expected prior state is known, so a caller racing a cancellation can tell
// which side won.
func (s *lifecycleState) tryTransition(from, to procLifecycle) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
