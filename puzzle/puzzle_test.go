package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/zensnap/slicer"
)

func TestScatter(t *testing.T) {
	geo := DefaultGeometry()
	tiles := make([]slicer.Tile, 16)
	pieces := Scatter(tiles, 4, geo, seeded())
	require.Len(t, pieces, 16)

	cell := geo.CellSize(4)
	for i, p := range pieces {
		assert.Equal(t, i, p.ID)
		assert.Equal(t, i/4, p.Row)
		assert.Equal(t, i%4, p.Col)
		assert.Equal(t, i, p.Z)
		assert.False(t, p.Locked)
		assert.Contains(t, Rotations[:], p.Rotation)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, geo.TrayWidth-cell)
		assert.GreaterOrEqual(t, p.Y, geo.TrayTop())
		assert.Less(t, p.Y, geo.TrayTop()+geo.TrayHeight-cell-geo.TrayGap)
		assert.Same(t, &tiles[i], p.Tile)
	}
}

func TestStoreReplacesWholeCollection(t *testing.T) {
	s := NewStore(Scatter(make([]slicer.Tile, 9), 3, DefaultGeometry(), seeded()), 3)
	before := s.Snapshot()

	_, ok := s.Update(4, func(p Piece) Piece {
		p.X = -500
		return p
	})
	require.True(t, ok)

	after := s.Snapshot()
	assert.NotEqual(t, -500.0, before[4].X)
	assert.Equal(t, -500.0, after[4].X)

	_, ok = s.Update(99, func(p Piece) Piece { return p })
	assert.False(t, ok)
}

func TestStoreRaiseIsMonotonic(t *testing.T) {
	s := NewStore(Scatter(make([]slicer.Tile, 9), 3, DefaultGeometry(), seeded()), 3)

	z1, ok := s.Raise(2)
	require.True(t, ok)
	z2, _ := s.Raise(5)
	z3, _ := s.Raise(2)

	assert.Equal(t, 10, z1)
	assert.Equal(t, 11, z2)
	assert.Equal(t, 12, z3)

	top := Piece{Z: -1}
	for _, p := range s.Snapshot() {
		if p.Z > top.Z {
			top = p
		}
	}
	assert.Equal(t, 2, top.ID)
}

func TestSnap(t *testing.T) {
	const cell = 120.0
	base := Piece{Row: 1, Col: 1}

	cases := []struct {
		name   string
		x, y   float64
		rot    int
		locked bool
	}{
		{"exact", 120, 120, 0, true},
		{"within_10px", 130, 110, 0, true},
		{"just_inside", 151.9, 88.1, 0, true},
		{"on_threshold", 152, 120, 0, false},
		{"50px_away", 170, 120, 0, false},
		{"rotated", 120, 120, 90, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := base
			p.X, p.Y, p.Rotation = c.x, c.y, c.rot
			got, locked := Snap(p, cell)
			assert.Equal(t, c.locked, locked)
			if c.locked {
				assert.Equal(t, 120.0, got.X)
				assert.Equal(t, 120.0, got.Y)
				assert.True(t, got.Locked)
			} else {
				assert.Equal(t, p, got)
			}
		})
	}
}

func TestSnapThresholdIgnoresCellSize(t *testing.T) {
	for _, cell := range []float64{160, 80} {
		p := Piece{Row: 0, Col: 0, X: 31, Y: 31}
		_, locked := Snap(p, cell)
		assert.True(t, locked, "cell %v", cell)
	}
}

func TestStars(t *testing.T) {
	cases := []struct {
		elapsed int
		grid    int
		want    int
	}{
		{0, 3, 3},
		{36, 3, 3},
		{37, 3, 2},
		{40, 3, 2},
		{63, 3, 2},
		{64, 3, 1},
		{64, 4, 3},
		{112, 4, 2},
		{113, 4, 1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Stars(c.elapsed, c.grid), "elapsed=%d grid=%d", c.elapsed, c.grid)
	}
	assert.Equal(t, 1, Stars(10, 0))
}

func TestTrackerStates(t *testing.T) {
	var tr Tracker
	tr.Tick()
	assert.Equal(t, 0, tr.Elapsed())
	assert.Equal(t, NotStarted, tr.State())

	assert.True(t, tr.Start())
	assert.False(t, tr.Start())
	tr.Tick()
	tr.Tick()
	assert.Equal(t, 2, tr.Elapsed())

	assert.True(t, tr.Stop())
	assert.False(t, tr.Stop())
	tr.Tick()
	assert.Equal(t, 2, tr.Elapsed())
	assert.Equal(t, Stopped, tr.State())
	assert.False(t, tr.Start())

	tr.Reset()
	assert.Equal(t, NotStarted, tr.State())
	assert.Equal(t, 0, tr.Elapsed())
}

func TestProgress(t *testing.T) {
	pct, done := Progress(nil)
	assert.Equal(t, 0, pct)
	assert.False(t, done)

	pieces := make([]Piece, 9)
	for i := 0; i < 3; i++ {
		pieces[i].Locked = true
	}
	pct, done = Progress(pieces)
	assert.Equal(t, 33, pct)
	assert.False(t, done)

	for i := range pieces {
		pieces[i].Locked = true
	}
	pct, done = Progress(pieces)
	assert.Equal(t, 100, pct)
	assert.True(t, done)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", FormatElapsed(-3))
	assert.Equal(t, "01:05", FormatElapsed(65))
	assert.Equal(t, "61:01", FormatElapsed(3661))
}
