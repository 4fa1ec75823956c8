package slicer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	placeholderScheme = "placeholder"
	placeholderSize   = 512
)

// palettes are the radial gradient stops of the bundled placeholder artwork.
var palettes = [][4]color.RGBA{
	{hex(0x0d9488), hex(0x065f46), hex(0x064e3b), hex(0x022c22)},
	{hex(0xea580c), hex(0xc2410c), hex(0x1e3a5f), hex(0x0f172a)},
	{hex(0x16a34a), hex(0x166534), hex(0x1a1a2e), hex(0x0f0f17)},
	{hex(0x7c3aed), hex(0x2dd4bf), hex(0xec4899), hex(0x0f172a)},
	{hex(0xdc2626), hex(0xf59e0b), hex(0x92400e), hex(0x1c1917)},
}

var stopOffsets = [4]float64{0, 0.4, 0.75, 1}

// PlaceholderSource renders offline artwork for placeholder://<id> URLs. The
// same id always yields the same PNG.
type PlaceholderSource struct {
	Size int
}

func (s PlaceholderSource) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := strconv.Atoi(strings.TrimPrefix(src, placeholderScheme+"://"))
	if err != nil {
		return nil, fmt.Errorf("bad placeholder url %q", src)
	}
	size := s.Size
	if size <= 0 {
		size = placeholderSize
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Placeholder(id, size)); err != nil {
		return nil, err
	}
	return io.NopCloser(&buf), nil
}

// Placeholder draws a radial gradient picked by id with a handful of soft
// discs on top so neighbouring tiles are distinguishable.
func Placeholder(id, size int) *image.RGBA {
	pal := palettes[((id%len(palettes))+len(palettes))%len(palettes)]
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx, cy := 0.5*float64(size), 0.4*float64(size)
	radius := 0.7 * float64(size)

	rng := rand.New(rand.NewPCG(uint64(id), 0x5eed))
	type disc struct{ x, y, r float64 }
	discs := make([]disc, 6)
	for i := range discs {
		discs[i] = disc{
			x: rng.Float64() * float64(size),
			y: rng.Float64() * float64(size),
			r: (0.08 + rng.Float64()*0.15) * float64(size),
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			c := gradientAt(pal, math.Hypot(fx-cx, fy-cy)/radius)
			for _, d := range discs {
				if math.Hypot(fx-d.x, fy-d.y) < d.r {
					c = lighten(c, 0.12)
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func gradientAt(pal [4]color.RGBA, t float64) color.RGBA {
	if t >= 1 {
		return pal[3]
	}
	for i := 1; i < len(stopOffsets); i++ {
		if t <= stopOffsets[i] {
			span := stopOffsets[i] - stopOffsets[i-1]
			return mix(pal[i-1], pal[i], (t-stopOffsets[i-1])/span)
		}
	}
	return pal[3]
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xff}
}

func lighten(c color.RGBA, amount float64) color.RGBA {
	return mix(c, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, amount)
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
