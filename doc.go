// Package dscheck provides a dynamic partial-order reduction (DPOR) model
// checker for concurrent Go code built on traced atomic shared-memory
// operations. It exhaustively (or, bounded, partially) explores the
// interleavings of a set of logical processes, replaying each one
// deterministically and reporting the first one that violates a caller
// supplied assertion.
//
// # Architecture
//
// A program under test is a function that spawns one or more logical
// processes ([Explorer.Spawn]) operating on one or more atomic cells
// ([Cell], created with [Make]). Every traced operation on a cell
// ([Get], [Set], [Exchange], [CompareAndSwap], [FetchAndAdd]) suspends its
// process until the run driver grants it permission to proceed, so that the
// relative order of operations across processes is entirely controlled by
// the driver rather than the Go scheduler.
//
// [Trace] drives the search: it replays the program once per discovered
// schedule via an internal run driver, and after each complete run extends
// the explored state tree using a last-access/backtrack relation
// that identifies exactly the alternate orderings capable of producing a
// different outcome (the DPOR reduction). Processes that did not finish a
// given run are cancelled before the next one starts; each run re-invokes
// the program function from scratch, so it must rebuild its state (spawn its
// processes, allocate its cells) every time.
//
// # Concurrency Model
//
// Within one run, only one logical process is ever actually executing user
// code at a time. Each [Proc] runs on its own goroutine but blocks on an
// unbuffered channel at every traced operation until explicitly resumed;
// the Explorer itself is not safe for concurrent use by two runs at once,
// matching the single-threaded, one-interleaving-at-a-time nature of the
// search.
//
// # Usage
//
//	summary, err := dscheck.Trace(context.Background(), func(ex *dscheck.Explorer) {
//	    c := ex.Spawn(func(p *dscheck.Proc) {
//	        cell := dscheck.Make(p, 0)
//	        dscheck.Set(p, cell, 1)
//	    })
//	    _ = c
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("explored %d interleavings across %d states\n", summary.Interleavings, summary.States)
//
// Assertions are checked with [Explorer.Check], typically from an
// [Explorer.Final] hook registered inside the program function, reading
// cell contents with [Peek] rather than the traced accessors.
//
// # Error Types
//
// The package reports distinct error types for distinct failure classes:
//   - [AssertionViolationError]: a [Explorer.Check] predicate returned false
//   - [ScheduleMismatchError], [NoEnabledProcessesError]: internal invariant
//     breaches, indicating a bug in the checker or a non-deterministic
//     program under test rather than a property being searched for
//
// All satisfy the standard [error] interface and support [errors.Unwrap]
// where they carry an underlying cause.
package dscheck
