package dscheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTrace_S1Shape(t *testing.T) {
	sched := []entry{
		{proc: 0, step: step{op: OpStart}},
		{proc: 1, step: step{op: OpStart}},
		{proc: 0, step: step{op: OpMake, target: 1, hasTarget: true}},
		{proc: 0, step: step{op: OpSet, target: 1, hasTarget: true}},
		{proc: 1, step: step{op: OpGet, target: 1, hasTarget: true}},
	}

	text := renderTrace(1, 2, sched)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	require.Equal(t, "sequence 1", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "---"))
	require.Equal(t, "P0\t\t\tP1", lines[2])
	require.True(t, strings.HasPrefix(lines[3], "---"))

	stepLines := lines[4:9]
	require.Len(t, stepLines, 5)
	require.Equal(t, "start  ", stepLines[0])
	require.Equal(t, "\t\t\tstart  ", stepLines[1])
	require.Equal(t, "make a", stepLines[2])
	require.Equal(t, "set a", stepLines[3])
	require.Equal(t, "\t\t\tget a", stepLines[4])

	require.True(t, strings.HasPrefix(lines[9], "---"))
}

func TestRenderTrace_TargetLabelsAdvanceAlphabetically(t *testing.T) {
	sched := []entry{
		{proc: 0, step: step{op: OpGet, target: 2, hasTarget: true}},
		{proc: 0, step: step{op: OpGet, target: 3, hasTarget: true}},
	}
	text := renderTrace(7, 1, sched)
	require.Contains(t, text, "get b")
	require.Contains(t, text, "get c")
	require.Contains(t, text, "sequence 7")
}

func TestBarWidth_GrowsWithProcessCount(t *testing.T) {
	require.Equal(t, 40, barWidth(1))
	require.Equal(t, 40, barWidth(5))
	require.Equal(t, 80, barWidth(20))
}
