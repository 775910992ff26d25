package dscheck

// run executes one fixed schedule end-to-end and returns the resulting
// state cell. f is the user's test function, re-invoked from scratch so it
// rebuilds the process registry deterministically.
//
// run panics with *ScheduleMismatchError or *NoEnabledProcessesError on an
// invariant breach (these indicate a bug in the checker or a
// non-deterministic test program, never a property of the program under
// test), and propagates any panic raised by a process body (a user
// exception) or by Check (*AssertionViolationError) unchanged. Trace is
// the only place these are recovered and turned into a returned error.
func (ex *Explorer) run(f func(*Explorer), sched []entry) *State {
	ex.runCounter++
	runID := ex.runCounter
	ex.currentRunID = runID
	ex.currentSchedule = nil
	ex.reg.reset()
	ex.everyHooks = nil
	ex.finalHooks = nil

	f(ex)

	for _, e := range sched {
		if n := ex.reg.count(); n > 0 && ex.reg.numFinished() == n {
			ex.log(LevelWarn, "driver", "schedule exhausted with no enabled processes but entries remain", runID, e.proc, 0, nil)
			panic(&NoEnabledProcessesError{RunID: runID})
		}

		p := ex.reg.proc(e.proc)
		want := p.nextStep()
		if want != e.step {
			panic(&ScheduleMismatchError{ProcID: e.proc, Expected: want, Got: e.step})
		}

		ex.dispatchOne(p)
		ex.currentSchedule = append(ex.currentSchedule, e)
		ex.log(LevelDebug, "driver", "dispatched step", runID, e.proc, e.step.target, nil)

		for _, hook := range ex.everyHooks {
			hook()
		}
	}

	allFinished := ex.reg.count() > 0 && ex.reg.numFinished() == ex.reg.count()
	if allFinished {
		numProcs := ex.reg.count()
		for _, hook := range ex.finalHooks {
			hook()
		}
		ex.interleavingsCompleted++
		ex.log(LevelInfo, "driver", "completed interleaving", runID, 0, 0, nil)
		if ex.opts.traceWriter != nil || ex.opts.recordTraces {
			ex.emitInterleavingTrace(numProcs, ex.currentSchedule)
		}
	}

	s := ex.buildState(sched)
	ex.discontinueParked()
	ex.reg.reset()
	ex.statesProduced++
	return s
}

// dispatchOne performs the handshake for a single schedule entry: grant the
// process permission to perform its already-announced pending step, then
// wait for it to report the step that follows (or that it finished).
func (ex *Explorer) dispatchOne(p *Proc) {
	select {
	case p.advance <- struct{}{}:
	}
	report := <-p.parked
	if report.panicVal != nil {
		panic(report.panicVal)
	}
	if report.finished {
		p.setFinished()
		ex.reg.markFinished()
		return
	}
	p.setNextStep(report.step)
}

// buildState snapshots the registry into a state cell.
func (ex *Explorer) buildState(sched []entry) *State {
	s := newState()
	for _, p := range ex.reg.snapshot() {
		s.Procs = append(s.Procs, procRec{procID: p.id, step: p.nextStep()})
		if !p.isFinished() {
			s.Enabled[p.id] = struct{}{}
		}
	}
	if len(sched) > 0 {
		last := sched[len(sched)-1]
		s.RunProc = last.proc
		s.RunOp = last.step.op
		s.RunTarget = last.step.target
		s.HasTarget = last.step.hasTarget
	}
	return s
}

// discontinueParked cancels every process that did not finish this run,
// releasing any continuation still blocked in a scheduler handshake.
func (ex *Explorer) discontinueParked() {
	for _, p := range ex.reg.snapshot() {
		if !p.isFinished() {
			p.discontinue()
		}
	}
}
