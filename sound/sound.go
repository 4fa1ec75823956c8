// Package sound plays the snap cue. Playback failures are logged once and
// otherwise ignored.
package sound

import (
	"sync"

	"go.uber.org/zap"

	"github.com/milk9111/zensnap/assets"
	"github.com/milk9111/zensnap/config"
)

// Clip is the part of *audio.Player a cue needs.
type Clip interface {
	SetVolume(volume float64)
	Rewind() error
	Play()
}

// Loader opens a clip by asset path.
type Loader func(path string) (Clip, error)

func loadAudio(path string) (Clip, error) {
	return assets.LoadAudioPlayer(path)
}

// Cue is a toggleable sound effect. The clip is loaded on first play.
type Cue struct {
	mu      sync.Mutex
	file    string
	volume  float64
	enabled bool
	load    Loader
	clip    Clip
	failed  bool
	logger  *zap.Logger
}

func New(cfg config.SoundConfig, logger *zap.Logger) *Cue {
	return NewWithLoader(cfg, loadAudio, logger)
}

func NewWithLoader(cfg config.SoundConfig, load Loader, logger *zap.Logger) *Cue {
	if logger == nil {
		logger = zap.NewNop()
	}
	file := cfg.File
	if file == "" {
		file = assets.SnapSound
	}
	return &Cue{
		file:    file,
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		load:    load,
		logger:  logger,
	}
}

func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled || c.failed {
		return
	}
	if c.clip == nil {
		clip, err := c.load(c.file)
		if err != nil {
			c.failed = true
			c.logger.Warn("snap sound unavailable", zap.String("file", c.file), zap.Error(err))
			return
		}
		c.clip = clip
	}
	c.clip.SetVolume(c.volume)
	if err := c.clip.Rewind(); err != nil {
		c.logger.Debug("rewind failed", zap.Error(err))
	}
	c.clip.Play()
}

func (c *Cue) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Cue) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

// Toggle flips the sound setting and returns the new value.
func (c *Cue) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
	return c.enabled
}

// Apply takes new settings from a reloaded config. A changed file is loaded
// again on the next play.
func (c *Cue) Apply(cfg config.SoundConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = cfg.Enabled
	c.volume = cfg.Volume
	if cfg.File != "" && cfg.File != c.file {
		c.file = cfg.File
		c.clip = nil
		c.failed = false
	}
}
