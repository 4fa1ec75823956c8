package main

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/zensnap/puzzle"
)

const hudHeight = 72

var (
	dimColor  = color.NRGBA{A: 120}
	gridColor = color.NRGBA{A: 24}
)

type puzzleScreen struct {
	game  *Game
	level *puzzle.Level
	drag  *puzzle.DragController
	area  puzzle.Rect

	images map[int]*ebiten.Image
	hud    *ebitenui.UI
	modal  *ebitenui.UI

	// touch is the id of the touch driving the current drag, or -1.
	touch ebiten.TouchID
	// next runs after the UI has finished dispatching clicks.
	next func()
}

func newPuzzleScreen(g *Game, id int) *puzzleScreen {
	lvl := g.app.OpenLevel(g.ctx, id)
	w, h := lvl.Session().Geometry().AreaSize()
	s := &puzzleScreen{
		game:   g,
		level:  lvl,
		area:   puzzle.Rect{X: (g.width() - w) / 2, Y: hudHeight, Width: w, Height: h},
		images: make(map[int]*ebiten.Image),
		touch:  -1,
	}
	s.drag = puzzle.NewDragController(lvl.Session(), puzzle.FixedSpace(s.area))
	s.hud = newHUD(s)
	return s
}

func (s *puzzleScreen) Update() error {
	for _, evt := range s.level.Poll() {
		s.handle(evt)
	}

	if s.modal != nil {
		s.modal.Update()
	} else {
		s.hud.Update()
		s.handleKeys()
		s.handlePointer()
		s.handleTouch()
	}

	if s.next != nil {
		next := s.next
		s.next = nil
		next()
	}
	return nil
}

func (s *puzzleScreen) handle(evt puzzle.Event) {
	log := s.game.app.logger
	switch evt.Kind {
	case puzzle.EventLoaded:
		s.buildImages()
	case puzzle.EventLoadFailed:
		log.Warn("level has no pieces", zap.Int("level", evt.LevelID), zap.Error(evt.Err))
	case puzzle.EventRestarted:
		s.dropImages()
		s.drag.Reset()
		s.touch = -1
		s.modal = nil
	case puzzle.EventCompleted:
		s.drag.Reset()
		s.touch = -1
		s.modal = newCompletionUI(s, evt)
	}
}

func (s *puzzleScreen) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.next = s.game.ShowMap
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.next = s.level.Restart
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.game.app.cue.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if id, ok := s.drag.Active(); ok {
			s.drag.Rotate(id)
		}
	}
}

func (s *puzzleScreen) handlePointer() {
	cx, cy := ebiten.CursorPosition()
	px, py := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.touch < 0 {
		if id, ok := s.drag.PieceAt(px, py); ok {
			s.drag.Begin(id, px, py)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if id, ok := s.drag.PieceAt(px, py); ok {
			s.drag.Rotate(id)
		}
	}
	if s.touch >= 0 {
		return
	}
	if id, ok := s.drag.Active(); ok {
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			s.drag.Move(id, px, py)
			s.drag.End(id)
		} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			s.drag.Move(id, px, py)
		}
	}
}

func (s *puzzleScreen) handleTouch() {
	if s.touch < 0 {
		if _, active := s.drag.Active(); active {
			return
		}
		for _, tid := range inpututil.AppendJustPressedTouchIDs(nil) {
			tx, ty := ebiten.TouchPosition(tid)
			id, ok := s.drag.PieceAt(float64(tx), float64(ty))
			if ok && s.drag.Begin(id, float64(tx), float64(ty)) {
				s.touch = tid
				break
			}
		}
		return
	}

	id, ok := s.drag.Active()
	if !ok {
		s.touch = -1
		return
	}
	if inpututil.IsTouchJustReleased(s.touch) {
		s.drag.Cancel(id)
		s.touch = -1
		return
	}
	tx, ty := ebiten.TouchPosition(s.touch)
	s.drag.Move(id, float64(tx), float64(ty))
}

func (s *puzzleScreen) buildImages() {
	s.dropImages()
	for _, p := range s.level.Session().Snapshot().Pieces {
		if p.Tile == nil {
			continue
		}
		img, err := p.Tile.Decode()
		if err != nil {
			s.game.app.logger.Warn("tile not drawable", zap.Int("piece", p.ID), zap.Error(err))
			continue
		}
		s.images[p.ID] = ebiten.NewImageFromImage(img)
	}
}

func (s *puzzleScreen) dropImages() {
	for id, img := range s.images {
		img.Deallocate()
		delete(s.images, id)
	}
}

func (s *puzzleScreen) Draw(dst *ebiten.Image) {
	theme := s.game.app.cfg.Theme
	session := s.level.Session()
	snap := session.Snapshot()
	geo := session.Geometry()
	a := s.area

	vector.FillRect(dst, float32(a.X), float32(a.Y), float32(geo.BoardSize), float32(geo.BoardSize), theme.Board.NRGBA, false)
	for i := 1; i < snap.GridSize; i++ {
		off := float32(float64(i) * snap.CellSize)
		vector.StrokeLine(dst, float32(a.X)+off, float32(a.Y), float32(a.X)+off, float32(a.Y+geo.BoardSize), 1, gridColor, false)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y)+off, float32(a.X+geo.BoardSize), float32(a.Y)+off, 1, gridColor, false)
	}
	vector.FillRect(dst, float32(a.X), float32(a.Y+geo.TrayTop()), float32(geo.TrayWidth), float32(geo.TrayHeight), theme.Tray.NRGBA, false)

	pieces := snap.Pieces
	slices.SortStableFunc(pieces, func(x, y puzzle.Piece) int {
		if x.Locked != y.Locked {
			if x.Locked {
				return -1
			}
			return 1
		}
		return x.Z - y.Z
	})
	active, dragging := s.drag.Active()
	for _, p := range pieces {
		s.drawPiece(dst, p, snap.CellSize, dragging && p.ID == active)
	}

	midX, midY := int(a.X+geo.BoardSize/2), int(a.Y+geo.BoardSize/2)
	switch {
	case snap.Loading:
		ebitenutil.DebugPrintAt(dst, "Loading picture...", midX-54, midY)
	case snap.LoadErr != nil:
		ebitenutil.DebugPrintAt(dst, "Could not load this picture.", midX-84, midY-10)
		ebitenutil.DebugPrintAt(dst, "Press R to try again.", midX-63, midY+10)
	}

	s.drawStatus(dst, snap)
	s.hud.Draw(dst)

	if s.modal != nil {
		vector.FillRect(dst, 0, 0, float32(s.game.width()), float32(s.game.height()), dimColor, false)
		s.modal.Draw(dst)
	}
}

func (s *puzzleScreen) drawPiece(dst *ebiten.Image, p puzzle.Piece, cell float64, active bool) {
	theme := s.game.app.cfg.Theme
	x, y := s.area.X+p.X, s.area.Y+p.Y

	img := s.images[p.ID]
	if img == nil {
		vector.FillRect(dst, float32(x), float32(y), float32(cell), float32(cell), colornames.Lightgrey, false)
	} else {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(cell/float64(w), cell/float64(h))
		op.GeoM.Translate(-cell/2, -cell/2)
		op.GeoM.Rotate(float64(p.Rotation) * math.Pi / 180)
		op.GeoM.Translate(x+cell/2, y+cell/2)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
	}

	if p.Locked {
		return
	}
	outline := color.Color(colornames.White)
	width := float32(1)
	if active {
		outline = theme.Accent.NRGBA
		width = 3
	}
	vector.StrokeRect(dst, float32(x), float32(y), float32(cell), float32(cell), width, outline, false)
}

func (s *puzzleScreen) drawStatus(dst *ebiten.Image, snap puzzle.Snapshot) {
	theme := s.game.app.cfg.Theme
	cfg := s.level.Config()

	sound := "off"
	if s.game.app.cue.Enabled() {
		sound = "on"
	}
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Level %d  %s  %dx%d", cfg.ID, cfg.Category, cfg.GridSize, cfg.GridSize), 12, 10)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s   %d%%   %s   sound %s", puzzle.FormatElapsed(snap.Elapsed), snap.Progress, cfg.Difficulty, sound), 12, 28)

	barW := float32(s.game.width() - 24)
	vector.FillRect(dst, 12, 54, barW, 6, theme.Tray.NRGBA, false)
	vector.FillRect(dst, 12, 54, barW*float32(snap.Progress)/100, 6, theme.Accent.NRGBA, false)
}

func (s *puzzleScreen) Close() {
	s.level.Close()
	s.dropImages()
}
