package dscheck

import "sync"

// Proc is a logical process: a spawned user function, run as a goroutine
// that is cooperatively gated by the scheduler so that only one logical
// process is ever actually executing user code at a time. It is the Go
// translation of the one-shot delimited continuation a reference model
// checker captures at every traced atomic operation, implemented here as a
// channel-rendezvous handshake with the run driver.
type Proc struct {
	id int
	ex *Explorer

	mu    sync.Mutex
	next  step
	state *lifecycleState

	advance  chan struct{}
	parked   chan pendingReport
	cancelCh chan struct{}
	cancel   sync.Once
}

// pendingReport is what a parked process sends the driver: either the step
// it will perform next, or that it finished (possibly abnormally).
type pendingReport struct {
	step     step
	finished bool
	panicVal any
}

// Explorer returns the Explorer this process was spawned under, so a
// process body can reach it without a separate closure capture (e.g. to
// call ex.Check from inside a process).
func (p *Proc) Explorer() *Explorer { return p.ex }

// ID returns the process's registry index.
func (p *Proc) ID() int { return p.id }

// spawnProc registers and starts a new process running f, parked at the
// synthetic Start step until the driver grants it permission to run.
func spawnProc(ex *Explorer, f func(*Proc)) *Proc {
	p := &Proc{
		ex:       ex,
		next:     step{op: OpStart},
		state:    newLifecycleState(),
		advance:  make(chan struct{}),
		parked:   make(chan pendingReport),
		cancelCh: make(chan struct{}),
	}
	p.id = ex.reg.register(p)
	go p.run(f)
	return p
}

func (p *Proc) run(f func(*Proc)) {
	defer func() {
		if r := recover(); r != nil {
			if r == errCancelled {
				return
			}
			select {
			case p.parked <- pendingReport{finished: true, panicVal: r}:
			case <-p.cancelCh:
			}
			return
		}
	}()

	select {
	case <-p.advance:
		p.state.tryTransition(procParked, procRunning)
	case <-p.cancelCh:
		panic(errCancelled)
	}

	f(p)

	select {
	case p.parked <- pendingReport{finished: true}:
	case <-p.cancelCh:
	}
}

// doStep is the core scheduler handshake performed by every traced atomic
// operation: announce the step about to be performed, wait for the
// driver's permission, then actually perform it. The real side effect
// happens only once permission is granted, so that the effect's position in
// the schedule is exactly the position the driver chose for it.
func (p *Proc) doStep(op OpKind, target int, hasTarget bool, perform func() any) any {
	s := step{op: op, target: target, hasTarget: hasTarget}

	p.mu.Lock()
	p.next = s
	p.mu.Unlock()

	p.state.tryTransition(procRunning, procParked)
	select {
	case p.parked <- pendingReport{step: s}:
	case <-p.cancelCh:
		panic(errCancelled)
	}

	select {
	case <-p.advance:
		p.state.tryTransition(procParked, procRunning)
	case <-p.cancelCh:
		panic(errCancelled)
	}

	return perform()
}

// nextStep returns the step this process will perform when next dispatched.
func (p *Proc) nextStep() step {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

func (p *Proc) setNextStep(s step) {
	p.mu.Lock()
	p.next = s
	p.mu.Unlock()
}

func (p *Proc) isFinished() bool {
	return p.state.load() == procFinished
}

func (p *Proc) setFinished() {
	p.state.tryTransition(procRunning, procFinished)
}

// discontinue cancels a still-parked process at the end of a run: it
// unblocks whichever select the process's goroutine is parked in, which
// panics with the internal cancellation sentinel and unwinds cleanly.
func (p *Proc) discontinue() {
	p.cancel.Do(func() {
		p.state.tryTransition(procParked, procDiscontinued)
		close(p.cancelCh)
	})
}
