package puzzle

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/milk9111/zensnap/progress"
	"github.com/milk9111/zensnap/slicer"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func newTestSession(levelID, grid int, cue Cue) *Session {
	s := NewSession(SessionConfig{
		LevelID:  levelID,
		GridSize: grid,
		Geometry: DefaultGeometry(),
		Rand:     seeded(),
		Cue:      cue,
	})
	s.Load(make([]slicer.Tile, grid*grid))
	s.Events().Drain()
	return s
}

// upright rotates piece id until it reads 0 degrees.
func upright(s *Session, id int) {
	for {
		p, _ := s.Piece(id)
		if p.Rotation == 0 {
			return
		}
		s.Rotate(id)
	}
}

// place drags piece id so its origin lands at area coordinates (x, y).
func place(d *DragController, s *Session, id int, x, y float64) bool {
	p, _ := s.Piece(id)
	b := d.space.Bounds()
	grabX, grabY := b.X+p.X+3, b.Y+p.Y+3
	if !d.Begin(id, grabX, grabY) {
		return false
	}
	d.Move(id, b.X+x+3, b.Y+y+3)
	return d.End(id)
}

func solveAll(d *DragController, s *Session) {
	for _, p := range s.Snapshot().Pieces {
		upright(s, p.ID)
		tx, ty := p.Target(s.CellSize())
		place(d, s, p.ID, tx, ty)
	}
}

type countingCue struct {
	n int
}

func (c *countingCue) Play() { c.n++ }

type manualTicker struct {
	ch      chan time.Time
	stopped int
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop() { m.stopped++ }

func (m *manualTicker) fire(n int) {
	for i := 0; i < n; i++ {
		m.ch <- time.Time{}
	}
}

type manualClock struct {
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	t := &manualTicker{ch: make(chan time.Time, 1024)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) last() *manualTicker {
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

// stubLoader hands out blank tiles, or blocks until canceled when hold is set.
// A non-nil gate blocks every call until it closes, ignoring cancellation the
// way an image decode does.
type stubLoader struct {
	mu    sync.Mutex
	calls int
	err   error
	hold  bool
	gate  chan struct{}
}

func (s *stubLoader) Slice(ctx context.Context, _ string, grid, _ int) ([]slicer.Tile, error) {
	s.mu.Lock()
	s.calls++
	hold, err, gate := s.hold, s.err, s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if hold {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return make([]slicer.Tile, grid*grid), nil
}

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, progress.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Close() error { return nil }
