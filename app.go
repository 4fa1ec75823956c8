package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/zensnap/config"
	"github.com/milk9111/zensnap/levels"
	"github.com/milk9111/zensnap/logging"
	"github.com/milk9111/zensnap/progress"
	"github.com/milk9111/zensnap/puzzle"
	"github.com/milk9111/zensnap/slicer"
	"github.com/milk9111/zensnap/sound"
)

const offlineImageURL = "placeholder://%d"

// App wires the engine packages together for both the game and the CLI.
type App struct {
	cfgPath string
	cfg     config.Config
	offline bool

	logger   *zap.Logger
	store    progress.KV
	book     *progress.Book
	slicer   *slicer.Slicer
	resolver levels.Resolver
	cue      *sound.Cue
}

func NewApp(cfgPath string, debug, offline bool) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	store, err := progress.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open progress store: %w", err)
	}

	a := &App{
		cfgPath: cfgPath,
		offline: offline,
		logger:  logger,
		store:   store,
		book:    progress.NewBook(store, logger.Named("progress")),
		slicer:  slicer.New(slicer.DefaultSource(), logger.Named("slicer")),
		cue:     sound.New(cfg.Sound, logger.Named("sound")),
	}
	a.apply(cfg)
	logger.Debug("app ready",
		zap.String("config", cfgPath),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("offline", offline))
	return a, nil
}

func (a *App) apply(cfg config.Config) {
	a.cfg = cfg
	a.resolver = levels.Resolver{ImageURL: cfg.ImageURL}
	if a.offline {
		a.resolver.ImageURL = offlineImageURL
	}
}

// Reload re-reads the config file. Board and image changes take effect on the
// next level; sound settings apply immediately.
func (a *App) Reload() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.apply(cfg)
	a.cue.Apply(cfg.Sound)
	a.logger.Info("config reloaded", zap.String("path", a.cfgPath))
	return nil
}

func (a *App) Geometry() puzzle.Geometry {
	return puzzle.Geometry{
		BoardSize:  a.cfg.BoardSize,
		TrayWidth:  a.cfg.BoardSize,
		TrayHeight: a.cfg.TrayHeight,
		TrayGap:    a.cfg.TrayGap,
	}
}

// OpenLevel resolves id and starts loading it.
func (a *App) OpenLevel(ctx context.Context, id int) *puzzle.Level {
	cfg := a.resolver.Resolve(id)
	a.logger.Info("opening level", zap.Int("level", cfg.ID), zap.Int("grid", cfg.GridSize), zap.String("src", cfg.ImageSrc))
	return puzzle.Open(ctx, cfg, a.Geometry(), puzzle.Deps{
		Loader:   a.slicer,
		Recorder: a.book,
		Cue:      a.cue,
		Logger:   a.logger.Named("puzzle"),
	})
}

func (a *App) Close() error {
	_ = a.logger.Sync()
	return a.store.Close()
}
