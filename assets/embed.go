package assets

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.wav
var assetsFS embed.FS

const SampleRate = 44100

// SnapSound is the embedded lock cue.
const SnapSound = "snap.wav"

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use. Ebiten allows only one per process.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile prefers a file on disk and falls back to the embedded copy.
func LoadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadAudioPlayer loads an audio asset and creates a player on the shared
// context.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return filepath.Base(s)
}
