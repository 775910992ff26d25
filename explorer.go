package dscheck

// Explorer is the explicit context object threaded through every traced
// atomic operation and the scheduler. One Explorer drives exactly one Trace
// call: it owns the process registry, the per-run bookkeeping the driver
// needs, and the accumulated exploration state the DPOR search grows across
// runs.
type Explorer struct {
	reg  *registry
	opts *explorerOptions

	runCounter int

	everyHooks []func()
	finalHooks []func()

	currentSchedule []entry
	currentRunID    int

	recordedTraceText      []string
	statesProduced         int
	interleavingsCompleted int
}

// New creates an Explorer configured by opts.
func New(opts ...Option) (*Explorer, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Explorer{
		reg:  newRegistry(),
		opts: cfg,
	}, nil
}

// Spawn registers a logical process running f, parked at Start until the
// driver dispatches it.
func (ex *Explorer) Spawn(f func(*Proc)) *Proc {
	return spawnProc(ex, f)
}

// Every installs a callback invoked by the driver after every dispatched
// step of the current run. Hooks registered this way apply only to the run
// currently in progress: the user's test function is re-executed from
// scratch on every run, so it must re-register them each time it runs.
func (ex *Explorer) Every(f func()) {
	ex.everyHooks = append(ex.everyHooks, f)
}

// Final installs a callback invoked exactly once, after a run's schedule is
// exhausted and every process has finished.
func (ex *Explorer) Final(f func()) {
	ex.finalHooks = append(ex.finalHooks, f)
}

func (ex *Explorer) log(level Level, category, message string, runID, procID, atomicID int, err error) {
	if !ex.opts.logger.IsEnabled(level) {
		return
	}
	ex.opts.logger.Log(LogEntry{
		Level:    level,
		Category: category,
		RunID:    runID,
		ProcID:   procID,
		AtomicID: atomicID,
		Message:  message,
		Err:      err,
	})
}
