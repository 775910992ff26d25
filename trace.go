package dscheck

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Summary reports the scale of one Trace call's exploration.
type Summary struct {
	Interleavings int
	States        int
}

// Trace constructs an Explorer from opts and explores every interleaving of
// f reachable by dynamic partial-order reduction. It returns once
// exploration is exhausted (or WithMaxInterleavings cuts it short), an
// assertion fails, or ctx is cancelled.
//
// A violation reported by Check, a scheduling invariant breach, or a panic
// raised by a process body all surface here as a returned error rather than
// a panic: Trace is the only place these are recovered.
func Trace(ctx context.Context, f func(*Explorer), opts ...Option) (summary *Summary, err error) {
	ex, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return ex.Trace(ctx, f)
}

// Trace runs ex's exploration of f. See the package-level Trace for details.
func (ex *Explorer) Trace(ctx context.Context, f func(*Explorer)) (summary *Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
			summary = nil
		}
	}()

	seed := []entry{{proc: 0, step: step{op: OpStart}}}
	first := ex.run(f, seed)
	state := execution{first}

	if explErr := ex.explore(ctx, f, state, clockMap{}, lastAccessMap{}); explErr != nil {
		return nil, explErr
	}

	summary = &Summary{
		Interleavings: ex.interleavingsCompleted,
		States:        ex.statesProduced,
	}

	if ex.opts.traceWriter != nil {
		fmt.Fprintf(ex.opts.traceWriter, "explored %d interleavings and %d states\n",
			summary.Interleavings, summary.States)
	}

	if ex.opts.traceFile != "" {
		if werr := ex.writeTraceFile(); werr != nil {
			return summary, werr
		}
	}

	return summary, nil
}

// panicToError converts a recovered panic value into an error, preserving
// the checker's own error types unchanged.
func panicToError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	default:
		return fmt.Errorf("dscheck: panic: %v", v)
	}
}

// emitInterleavingTrace prints sched's rendered trace to the configured
// trace writer, if any, and (if recording is enabled) retains the rendered
// text for RecordedTraces.
func (ex *Explorer) emitInterleavingTrace(numProcs int, sched []entry) {
	seq := ex.interleavingsCompleted
	text := renderTrace(seq, numProcs, sched)

	if ex.opts.traceWriter != nil {
		fmt.Fprint(ex.opts.traceWriter, text)
	}
	if ex.opts.recordTraces {
		ex.recordedTraceText = append(ex.recordedTraceText, text)
	}
}

// RecordedTraces returns the rendered text of every completed interleaving
// seen so far, in discovery order. It is empty unless WithRecordTraces(true)
// or the dscheck_trace_file environment variable was in effect.
func (ex *Explorer) RecordedTraces() []string {
	return append([]string(nil), ex.recordedTraceText...)
}

// writeTraceFile dumps every recorded trace to ex.opts.traceFile, one
// sequence block per completed interleaving.
func (ex *Explorer) writeTraceFile() error {
	var b strings.Builder
	for _, t := range ex.recordedTraceText {
		b.WriteString(t)
	}
	return os.WriteFile(ex.opts.traceFile, []byte(b.String()), 0o644)
}

// renderTrace formats one interleaving as a fixed-width column layout: a
// "sequence N" header, a dashed bar, one tab-separated column per process,
// another bar, then one line per scheduled step indented to its process's
// column, and a closing bar.
func renderTrace(seq int, numProcs int, sched []entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "sequence %d\n", seq)
	bar := strings.Repeat("-", barWidth(numProcs))
	b.WriteString(bar)
	b.WriteByte('\n')

	for i := 0; i < numProcs; i++ {
		if i > 0 {
			b.WriteString("\t\t\t")
		}
		fmt.Fprintf(&b, "P%d", i)
	}
	b.WriteByte('\n')
	b.WriteString(bar)
	b.WriteByte('\n')

	for _, e := range sched {
		b.WriteString(strings.Repeat("\t\t\t", e.proc))
		label := " "
		if e.step.hasTarget {
			label = targetLabel(e.step.target)
		}
		fmt.Fprintf(&b, "%s %s\n", e.step.op, label)
	}

	b.WriteString(bar)
	b.WriteByte('\n')
	return b.String()
}

// barWidth picks a dashed-bar length proportional to the number of process
// columns, wide enough to underline the widest realistic header row.
func barWidth(numProcs int) int {
	w := numProcs * 4
	if w < 40 {
		w = 40
	}
	return w
}
