package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/milk9111/zensnap/config"
)

var errQuit = errors.New("quit")

// screen is one full-window view. Close releases whatever the screen owns.
type screen interface {
	Update() error
	Draw(dst *ebiten.Image)
	Close()
}

type Game struct {
	ctx    context.Context
	app    *App
	debug  bool
	frames int

	screen  screen
	watcher *config.Watcher
}

func NewGame(ctx context.Context, app *App, debug bool) *Game {
	g := &Game{ctx: ctx, app: app, debug: debug}
	if w, err := config.NewWatcher(app.cfgPath); err != nil {
		app.logger.Warn("config hot reload disabled", zap.Error(err))
	} else {
		g.watcher = w
	}
	g.ShowMap()
	return g
}

// ShowMap switches to the level map, reloading saved progress.
func (g *Game) ShowMap() {
	g.setScreen(newMapScreen(g))
}

// OpenLevel switches to the puzzle screen for level id.
func (g *Game) OpenLevel(id int) {
	g.setScreen(newPuzzleScreen(g, id))
}

func (g *Game) setScreen(s screen) {
	if g.screen != nil {
		g.screen.Close()
	}
	g.screen = s
}

func (g *Game) Update() error {
	g.frames++
	g.pollConfig()
	if ebiten.IsWindowBeingClosed() {
		return errQuit
	}
	return g.screen.Update()
}

func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(g.app.cfg.Theme.Background.NRGBA)
	g.screen.Draw(dst)

	if g.debug {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 8, int(g.height())-18)
	}
}

func (g *Game) width() float64 {
	return float64(g.app.cfg.Window.Width)
}

func (g *Game) height() float64 {
	return float64(g.app.cfg.Window.Height)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width(), g.height()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close tears down the current screen and the config watcher.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case _, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		if err := g.app.Reload(); err != nil {
			g.app.logger.Warn("config reload failed", zap.Error(err))
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.app.logger.Warn("config watcher error", zap.Error(err))
		}
	default:
	}
}
