package puzzle

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/zensnap/slicer"
)

// Cue plays a short sound. Implementations must not block and swallow
// their own failures.
type Cue interface {
	Play()
}

type nopCue struct{}

func (nopCue) Play() {}

type SessionConfig struct {
	LevelID  int
	GridSize int
	Geometry Geometry
	Rand     *rand.Rand
	Cue      Cue
	Logger   *zap.Logger
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	SessionID string
	LevelID   int
	GridSize  int
	CellSize  float64
	Pieces    []Piece
	Progress  int
	Completed bool
	Elapsed   int
	Timer     TimerState
	Loading   bool
	LoadErr   error
	Stars     int
}

// Session is the state machine of one level attempt. It must be driven from a
// single goroutine; it starts none of its own.
type Session struct {
	cfg     SessionConfig
	cell    float64
	id      uuid.UUID
	store   *Store
	tracker Tracker
	loading bool
	loadErr error
	stars   int
	events  EventQueue
	logger  *zap.Logger
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Cue == nil {
		cfg.Cue = nopCue{}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Session{cfg: cfg, cell: cfg.Geometry.CellSize(cfg.GridSize)}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.id = uuid.New()
	s.store = NewStore(nil, s.cfg.GridSize)
	s.tracker.Reset()
	s.loading = true
	s.loadErr = nil
	s.stars = 0
	s.logger = s.cfg.Logger.With(zap.Int("level", s.cfg.LevelID), zap.String("session", s.id.String()))
}

// Restart throws away every piece and the timer and waits for new tiles.
func (s *Session) Restart() {
	s.reset()
	s.events.Push(Event{Kind: EventRestarted, LevelID: s.cfg.LevelID})
}

// Load scatters tiles into the tray and ends the loading phase.
func (s *Session) Load(tiles []slicer.Tile) {
	s.store = NewStore(Scatter(tiles, s.cfg.GridSize, s.cfg.Geometry, s.cfg.Rand), s.cfg.GridSize)
	s.loading = false
	s.loadErr = nil
	s.logger.Debug("pieces scattered", zap.Int("pieces", s.store.Len()))
	s.events.Push(Event{Kind: EventLoaded, LevelID: s.cfg.LevelID})
}

// Fail ends the loading phase with an empty board.
func (s *Session) Fail(err error) {
	s.store = NewStore(nil, s.cfg.GridSize)
	s.loading = false
	s.loadErr = err
	s.events.Push(Event{Kind: EventLoadFailed, LevelID: s.cfg.LevelID, Err: err})
}

// Begin raises piece id and sets the interaction latch. Locked or unknown
// pieces are ignored.
func (s *Session) Begin(id int) bool {
	p, ok := s.store.Piece(id)
	if !ok || p.Locked {
		return false
	}
	if s.tracker.Start() {
		s.events.Push(Event{Kind: EventTimerStarted, LevelID: s.cfg.LevelID})
	}
	s.store.Raise(id)
	return true
}

// MoveTo places piece id at area coordinates (x, y). Positions are not clamped.
func (s *Session) MoveTo(id int, x, y float64) bool {
	p, ok := s.store.Piece(id)
	if !ok || p.Locked {
		return false
	}
	s.store.Update(id, func(p Piece) Piece {
		p.X, p.Y = x, y
		return p
	})
	return true
}

// Release runs the snap rule on piece id and reports whether it locked.
func (s *Session) Release(id int) bool {
	p, ok := s.store.Piece(id)
	if !ok || p.Locked {
		return false
	}
	snapped, locked := Snap(p, s.cell)
	if !locked {
		return false
	}
	s.store.Update(id, func(Piece) Piece { return snapped })
	s.cfg.Cue.Play()

	pct, done := Progress(s.store.pieces)
	s.events.Push(Event{Kind: EventLocked, LevelID: s.cfg.LevelID, PieceID: id})
	s.events.Push(Event{Kind: EventProgress, LevelID: s.cfg.LevelID, Progress: pct})
	if done {
		s.complete()
	}
	return true
}

func (s *Session) complete() {
	if !s.tracker.Stop() {
		return
	}
	s.stars = Stars(s.tracker.Elapsed(), s.cfg.GridSize)
	s.logger.Info("level completed", zap.Int("elapsed", s.tracker.Elapsed()), zap.Int("stars", s.stars))
	s.events.Push(Event{
		Kind:    EventCompleted,
		LevelID: s.cfg.LevelID,
		Elapsed: s.tracker.Elapsed(),
		Stars:   s.stars,
	})
}

// Rotate turns piece id a quarter clockwise unless it is locked.
func (s *Session) Rotate(id int) bool {
	p, ok := s.store.Piece(id)
	if !ok || p.Locked {
		return false
	}
	s.store.Update(id, func(p Piece) Piece {
		p.Rotation = (p.Rotation + 90) % 360
		return p
	})
	return true
}

// Tick advances the elapsed counter by one second while the timer runs.
func (s *Session) Tick() {
	s.tracker.Tick()
}

func (s *Session) Piece(id int) (Piece, bool) {
	return s.store.Piece(id)
}

func (s *Session) CellSize() float64 {
	return s.cell
}

func (s *Session) Geometry() Geometry {
	return s.cfg.Geometry
}

func (s *Session) LevelID() int {
	return s.cfg.LevelID
}

// Events exposes the queue the session writes to.
func (s *Session) Events() *EventQueue {
	return &s.events
}

func (s *Session) Snapshot() Snapshot {
	pieces := s.store.Snapshot()
	pct, done := Progress(pieces)
	return Snapshot{
		SessionID: s.id.String(),
		LevelID:   s.cfg.LevelID,
		GridSize:  s.cfg.GridSize,
		CellSize:  s.cell,
		Pieces:    pieces,
		Progress:  pct,
		Completed: done,
		Elapsed:   s.tracker.Elapsed(),
		Timer:     s.tracker.State(),
		Loading:   s.loading,
		LoadErr:   s.loadErr,
		Stars:     s.stars,
	}
}
