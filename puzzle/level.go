package puzzle

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/zensnap/levels"
	"github.com/milk9111/zensnap/progress"
	"github.com/milk9111/zensnap/slicer"
)

// TileLoader produces the tiles of a level picture.
type TileLoader interface {
	Slice(ctx context.Context, src string, gridSize, cellSize int) ([]slicer.Tile, error)
}

// Recorder stores a finished level's rating.
type Recorder interface {
	Record(ctx context.Context, levelID, stars int) (progress.UserProgress, error)
}

type Deps struct {
	Loader   TileLoader
	Recorder Recorder
	Clock    Clock
	Cue      Cue
	Rand     *rand.Rand
	Logger   *zap.Logger
}

type loadResult struct {
	tiles []slicer.Tile
	err   error
}

// Level owns one open level: its session, the background image load and the
// one-second ticker. Poll must be called from the goroutine that drives the
// session. Restart never blocks on a load; Close joins every load goroutine,
// so nothing outlives it.
type Level struct {
	cfg     levels.Config
	deps    Deps
	session *Session
	logger  *zap.Logger

	parent context.Context
	cancel context.CancelFunc
	loads  chan loadResult
	wg     sync.WaitGroup
	ticker Ticker
	closed bool

	progress progress.UserProgress
	recorded bool
}

// Open starts loading cfg's picture and returns immediately.
func Open(ctx context.Context, cfg levels.Config, geo Geometry, deps Deps) *Level {
	if deps.Clock == nil {
		deps.Clock = RealClock
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	l := &Level{
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger.With(zap.Int("level", cfg.ID)),
		parent: ctx,
		session: NewSession(SessionConfig{
			LevelID:  cfg.ID,
			GridSize: cfg.GridSize,
			Geometry: geo,
			Rand:     deps.Rand,
			Cue:      deps.Cue,
			Logger:   deps.Logger,
		}),
	}
	l.start()
	return l
}

func (l *Level) Config() levels.Config {
	return l.cfg
}

// Session is the state machine the input layer drives.
func (l *Level) Session() *Session {
	return l.session
}

// Progress returns the record written after completion, if any.
func (l *Level) Progress() (progress.UserProgress, bool) {
	return l.progress, l.recorded
}

func (l *Level) start() {
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel
	results := make(chan loadResult, 1)
	l.loads = results

	cell := int(l.session.CellSize())
	src := l.cfg.ImageSrc
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if l.deps.Loader == nil {
			results <- loadResult{err: slicer.ErrImageLoad}
			return
		}
		tiles, err := l.deps.Loader.Slice(ctx, src, l.cfg.GridSize, cell)
		results <- loadResult{tiles: tiles, err: err}
	}()
}

// detach cancels the load in flight and stops the ticker without waiting.
// The abandoned goroutine sends into its own buffered channel and exits.
func (l *Level) detach() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.loads = nil
	l.stopTicker()
}

func (l *Level) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

// Restart discards the attempt and loads the level again from scratch.
func (l *Level) Restart() {
	if l.closed {
		return
	}
	l.detach()
	l.recorded = false
	l.session.Restart()
	l.start()
	l.logger.Info("level restarted")
}

func (l *Level) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.detach()
	l.wg.Wait()
}

// Poll applies finished loads and pending ticks, reacts to session events
// and returns them.
func (l *Level) Poll() []Event {
	if l.closed {
		return nil
	}
	if l.loads != nil {
		select {
		case res := <-l.loads:
			l.loads = nil
			l.applyLoad(res)
		default:
		}
	}
	if l.ticker != nil {
	drain:
		for {
			select {
			case <-l.ticker.C():
				l.session.Tick()
			default:
				break drain
			}
		}
	}

	events := l.session.Events().Drain()
	for _, evt := range events {
		switch evt.Kind {
		case EventTimerStarted:
			if l.ticker == nil {
				l.ticker = l.deps.Clock.NewTicker(time.Second)
			}
		case EventCompleted:
			l.stopTicker()
			l.record(evt)
		}
	}
	return events
}

func (l *Level) applyLoad(res loadResult) {
	if res.err != nil {
		l.logger.Error("failed to slice image", zap.String("src", l.cfg.ImageSrc), zap.Error(res.err))
		l.session.Fail(res.err)
		return
	}
	l.session.Load(res.tiles)
}

func (l *Level) record(evt Event) {
	if l.deps.Cue != nil {
		l.deps.Cue.Play()
	}
	if l.deps.Recorder == nil {
		return
	}
	p, err := l.deps.Recorder.Record(l.parent, evt.LevelID, evt.Stars)
	if err != nil {
		l.logger.Error("failed to save progress", zap.Error(err))
		return
	}
	l.progress = p
	l.recorded = true
}
