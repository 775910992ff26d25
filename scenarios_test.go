package dscheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// spawnCounterReaders is shared by the scenarios below: the first process
// allocates the shared counter and spawns the second only once the
// allocation has actually taken effect, so neither process can ever
// observe the counter before it exists.
func spawnCounterReaders(ex *Explorer, ops func(p *Proc, c *Cell[int])) *Cell[int] {
	var cell *Cell[int]
	ex.Spawn(func(p *Proc) {
		cell = Make(p, 0)
		p.Explorer().Spawn(func(p2 *Proc) {
			ops(p2, cell)
		})
		ops(p, cell)
	})
	return cell
}

// TestScenario_LostUpdate mirrors a classic read-modify-write race: two
// processes each do get; set(get+1) against a counter seeded at 0. Some
// interleaving lets both reads observe 0 before either write lands,
// dropping one increment, so Check must eventually report a violation.
func TestScenario_LostUpdate(t *testing.T) {
	var cellRef *Cell[int]
	_, err := Trace(context.Background(), func(ex *Explorer) {
		cellRef = spawnCounterReaders(ex, func(p *Proc, c *Cell[int]) {
			v := Get(p, c)
			Set(p, c, v+1)
		})
		ex.Final(func() {
			ex.Check(func() bool { return Peek(cellRef) == 2 })
		})
	})

	require.Error(t, err)
	var violation *AssertionViolationError
	require.True(t, errors.As(err, &violation))
	require.NotEmpty(t, violation.Trace)
}

// TestScenario_CompareAndSwapLoopIsRaceFree has each process retry a CAS
// until its increment lands, which is correct under every interleaving.
func TestScenario_CompareAndSwapLoopIsRaceFree(t *testing.T) {
	var cellRef *Cell[int]
	_, err := Trace(context.Background(), func(ex *Explorer) {
		cellRef = spawnCounterReaders(ex, func(p *Proc, c *Cell[int]) {
			for {
				cur := Get(p, c)
				if CompareAndSwap(p, c, cur, cur+1) {
					break
				}
			}
		})
		ex.Final(func() {
			ex.Check(func() bool { return Peek(cellRef) == 2 })
		})
	})
	require.NoError(t, err)
}

// TestScenario_FetchAndAddIsAtomic has each process perform a single
// fetch_and_add(+1); since the op itself is the unit of scheduling, no
// interleaving can lose an update.
func TestScenario_FetchAndAddIsAtomic(t *testing.T) {
	var cellRef *Cell[int]
	summary, err := Trace(context.Background(), func(ex *Explorer) {
		cellRef = spawnCounterReaders(ex, func(p *Proc, c *Cell[int]) {
			FetchAndAdd(p, c, 1)
		})
		ex.Final(func() {
			ex.Check(func() bool { return Peek(cellRef) == 2 })
		})
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, summary.Interleavings, 1)
}
