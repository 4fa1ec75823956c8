package levels

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, Completed, Status(1, 3))
	assert.Equal(t, Unlocked, Status(3, 3))
	assert.Equal(t, Locked, Status(4, 3))
	assert.Equal(t, "locked", Locked.String())
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 50, VisibleCount(1))
	assert.Equal(t, 50, VisibleCount(30))
	assert.Equal(t, 61, VisibleCount(41))
}

func TestLayoutPutsFirstLevelAtBottom(t *testing.T) {
	nodes := Layout(3, 200, NodeGap)
	require.Len(t, nodes, 3)

	assert.Equal(t, 1, nodes[0].Level)
	assert.InDelta(t, 250, nodes[0].Y, 1e-9)
	assert.InDelta(t, 50, nodes[2].Y, 1e-9)
	assert.InDelta(t, 200+math.Sin(0.8)*PathAmplitude, nodes[0].X, 1e-9)

	assert.Nil(t, Layout(0, 200, NodeGap))
}

func TestPath(t *testing.T) {
	assert.Empty(t, Path(nil))
	assert.Empty(t, Path(Layout(1, 0, NodeGap)))

	nodes := []Node{{Level: 1, X: 10, Y: 200}, {Level: 2, X: 30, Y: 100}, {Level: 3, X: 20, Y: 0}}
	segs := Segments(nodes)
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{X0: 10, Y0: 200, C1X: 10, C1Y: 150, C2X: 30, C2Y: 150, X1: 30, Y1: 100}, segs[0])

	d := Path(nodes)
	assert.True(t, strings.HasPrefix(d, "M 10.0 200.0"))
	assert.Equal(t, 2, strings.Count(d, " C "))
	assert.True(t, strings.HasSuffix(d, "20.0 0.0"))
}

func TestSegmentAt(t *testing.T) {
	segs := Segments(Layout(3, 200, NodeGap))
	require.Len(t, segs, 2)

	x, y := segs[0].At(0)
	assert.InDelta(t, segs[0].X0, x, 1e-9)
	assert.InDelta(t, segs[0].Y0, y, 1e-9)

	x, y = segs[0].At(1)
	assert.InDelta(t, segs[0].X1, x, 1e-9)
	assert.InDelta(t, segs[0].Y1, y, 1e-9)

	_, y = segs[0].At(0.5)
	assert.InDelta(t, (segs[0].Y0+segs[0].Y1)/2, y, 1e-9)
}
