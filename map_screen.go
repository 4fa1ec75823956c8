package main

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/zensnap/levels"
	"github.com/milk9111/zensnap/progress"
)

const (
	mapHeader    = 56
	nodeRadius   = 26
	pathSteps    = 16
	scrollStep   = 40
	nodeHitSlack = 4
)

type mapScreen struct {
	game     *Game
	progress progress.UserProgress
	nodes    []levels.Node

	scroll    float64
	maxScroll float64
}

func newMapScreen(g *Game) *mapScreen {
	p := g.app.book.Load(g.ctx)
	count := levels.VisibleCount(p.HighestLevel)
	s := &mapScreen{
		game:     g,
		progress: p,
		nodes:    levels.Layout(count, g.width()/2, levels.NodeGap),
	}
	s.maxScroll = max(0, float64(count)*levels.NodeGap-s.viewHeight())

	// start with the highest unlocked level in the middle of the view
	if cur := s.node(p.HighestLevel); cur != nil {
		s.scroll = cur.Y - s.viewHeight()/2
	}
	s.clampScroll()
	return s
}

func (s *mapScreen) viewHeight() float64 {
	return s.game.height() - mapHeader
}

func (s *mapScreen) node(level int) *levels.Node {
	if level < 1 || level > len(s.nodes) {
		return nil
	}
	return &s.nodes[level-1]
}

func (s *mapScreen) clampScroll() {
	s.scroll = min(max(s.scroll, 0), s.maxScroll)
}

func (s *mapScreen) Update() error {
	_, wy := ebiten.Wheel()
	s.scroll -= wy * scrollStep
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		s.scroll -= scrollStep / 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		s.scroll += scrollStep / 4
	}
	s.clampScroll()

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.game.OpenLevel(s.progress.HighestLevel)
		return nil
	}

	var px, py int
	pressed := false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		px, py = ebiten.CursorPosition()
		pressed = true
	} else if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		px, py = ebiten.TouchPosition(ids[0])
		pressed = true
	}
	if pressed {
		if level, ok := s.hit(float64(px), float64(py)); ok {
			s.game.OpenLevel(level)
		}
	}
	return nil
}

// hit returns the openable level under the screen point, if any.
func (s *mapScreen) hit(px, py float64) (int, bool) {
	if py < mapHeader {
		return 0, false
	}
	y := py - mapHeader + s.scroll
	for _, n := range s.nodes {
		if math.Hypot(px-n.X, y-n.Y) > nodeRadius+nodeHitSlack {
			continue
		}
		if levels.Status(n.Level, s.progress.HighestLevel) == levels.Locked {
			return 0, false
		}
		return n.Level, true
	}
	return 0, false
}

func (s *mapScreen) Draw(dst *ebiten.Image) {
	theme := s.game.app.cfg.Theme
	top := mapHeader - s.scroll
	visible := func(y float64) bool {
		sy := y + top
		return sy > mapHeader-levels.NodeGap && sy < s.game.height()+levels.NodeGap
	}

	for _, seg := range levels.Segments(s.nodes) {
		if !visible(seg.Y0) && !visible(seg.Y1) {
			continue
		}
		x0, y0 := seg.At(0)
		for i := 1; i <= pathSteps; i++ {
			x1, y1 := seg.At(float64(i) / pathSteps)
			vector.StrokeLine(dst, float32(x0), float32(y0+top), float32(x1), float32(y1+top), 6, theme.Tray.NRGBA, true)
			x0, y0 = x1, y1
		}
	}

	for _, n := range s.nodes {
		if !visible(n.Y) {
			continue
		}
		s.drawNode(dst, n, top)
	}

	vector.FillRect(dst, 0, 0, float32(s.game.width()), mapHeader, theme.Background.NRGBA, false)
	total := 0
	for _, v := range s.progress.Stars {
		total += v
	}
	ebitenutil.DebugPrintAt(dst, "ZenSnap", 12, 10)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Level %d unlocked   %d stars", s.progress.HighestLevel, total), 12, 28)
}

func (s *mapScreen) drawNode(dst *ebiten.Image, n levels.Node, top float64) {
	theme := s.game.app.cfg.Theme
	cx, cy := float32(n.X), float32(n.Y+top)

	var fill color.Color
	switch levels.Status(n.Level, s.progress.HighestLevel) {
	case levels.Completed:
		fill = theme.Accent.NRGBA
	case levels.Unlocked:
		fill = colornames.Goldenrod
		vector.StrokeCircle(dst, cx, cy, nodeRadius+5, 2, colornames.Goldenrod, true)
	default:
		fill = colornames.Lightgrey
	}
	vector.FillCircle(dst, cx, cy, nodeRadius, fill, true)

	label := strconv.Itoa(n.Level)
	ebitenutil.DebugPrintAt(dst, label, int(cx)-3*len(label), int(cy)-8)
	if stars := s.progress.StarsFor(n.Level); stars > 0 {
		ebitenutil.DebugPrintAt(dst, starString(stars), int(cx)-9, int(cy)+nodeRadius+2)
	}
}

func (s *mapScreen) Close() {}
