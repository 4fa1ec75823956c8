// Package slicer cuts a square puzzle picture into grid tiles.
package slicer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const defaultQuality = 85

// Tile is one cell-sized fragment of the source picture.
type Tile struct {
	Index    int
	Row, Col int
	Image    *image.RGBA
	// Encoded is the lossy JPEG form of Image.
	Encoded []byte
}

// Decode returns the picture stored in Encoded, or Image when nothing was encoded.
func (t Tile) Decode() (image.Image, error) {
	if len(t.Encoded) == 0 {
		if t.Image == nil {
			return nil, fmt.Errorf("slicer: tile %d has no image", t.Index)
		}
		return t.Image, nil
	}
	return jpeg.Decode(bytes.NewReader(t.Encoded))
}

type Slicer struct {
	Source  Source
	Scaler  draw.Scaler
	Quality int
	Workers int
	// KeepPixels keeps Tile.Image on tiles returned by Slice. Otherwise only
	// the encoded form is held and consumers call Tile.Decode.
	KeepPixels bool
	Logger     *zap.Logger
}

// New returns a slicer reading through src with the default scaler.
func New(src Source, logger *zap.Logger) *Slicer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slicer{Source: src, Logger: logger}
}

// Slice loads src and cuts it into gridSize*gridSize tiles of cellSize pixels
// in row-major order. The source aspect ratio is ignored. Any failure yields
// an error wrapping ErrImageLoad and no tiles.
func (s *Slicer) Slice(ctx context.Context, src string, gridSize, cellSize int) ([]Tile, error) {
	if gridSize < 1 || cellSize < 1 {
		return nil, fmt.Errorf("%w: invalid grid %d or cell size %d", ErrImageLoad, gridSize, cellSize)
	}
	img, err := s.load(ctx, src)
	if err != nil {
		return nil, err
	}
	// decoding ignores ctx, so a load abandoned meanwhile stops here
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageLoad, src, err)
	}
	s.logger().Debug("image decoded",
		zap.String("src", src),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	tiles, err := s.Cut(ctx, img, gridSize, cellSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if !s.KeepPixels {
		for i := range tiles {
			tiles[i].Image = nil
		}
	}
	return tiles, nil
}

func (s *Slicer) load(ctx context.Context, src string) (image.Image, error) {
	source := s.Source
	if source == nil {
		source = DefaultSource()
	}
	rc, err := source.Open(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrImageLoad, src, err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrImageLoad, src, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s is empty", ErrImageLoad, src)
	}
	return img, nil
}

// Cut splits img without loading anything. Regions partition the bounds
// exactly, so no source pixel is dropped when the size is not divisible.
func (s *Slicer) Cut(ctx context.Context, img image.Image, gridSize, cellSize int) ([]Tile, error) {
	b := img.Bounds()
	tiles := make([]Tile, gridSize*gridSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i := range tiles {
		row, col := i/gridSize, i%gridSize
		sr := image.Rect(
			b.Min.X+col*b.Dx()/gridSize,
			b.Min.Y+row*b.Dy()/gridSize,
			b.Min.X+(col+1)*b.Dx()/gridSize,
			b.Min.Y+(row+1)*b.Dy()/gridSize,
		)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := image.NewRGBA(image.Rect(0, 0, cellSize, cellSize))
			s.scaler().Scale(dst, dst.Bounds(), img, sr, draw.Src, nil)

			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.quality()}); err != nil {
				return fmt.Errorf("encode tile %d: %w", i, err)
			}
			tiles[i] = Tile{Index: i, Row: row, Col: col, Image: dst, Encoded: buf.Bytes()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}

func (s *Slicer) scaler() draw.Scaler {
	if s.Scaler == nil {
		return draw.CatmullRom
	}
	return s.Scaler
}

func (s *Slicer) quality() int {
	if s.Quality <= 0 || s.Quality > 100 {
		return defaultQuality
	}
	return s.Quality
}

func (s *Slicer) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (s *Slicer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
