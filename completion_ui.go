package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/zensnap/levels"
	"github.com/milk9111/zensnap/progress"
	"github.com/milk9111/zensnap/puzzle"
)

// nextLevel returns the level after levelID when the record lets it open.
func nextLevel(levelID int, p progress.UserProgress) (int, bool) {
	next := levelID + 1
	return next, levels.Status(next, p.HighestLevel) != levels.Locked
}

// newCompletionUI builds the centered modal shown when a level is solved.
func newCompletionUI(s *puzzleScreen, evt puzzle.Event) *ebitenui.UI {
	theme := s.game.app.cfg.Theme
	face := uiFace()
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 235})

	p, ok := s.level.Progress()
	if !ok {
		p = s.game.app.book.Load(s.game.ctx)
	}
	best := max(evt.Stars, p.StarsFor(evt.LevelID))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(s.game.width()/2), int(s.game.height()/4)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(newLabel(fmt.Sprintf("Level %d complete!", evt.LevelID), face, theme.Text.NRGBA))
	panel.AddChild(newLabel("Time "+puzzle.FormatElapsed(evt.Elapsed), face, theme.Text.NRGBA))
	panel.AddChild(newLabel(fmt.Sprintf("Stars %s   Best %s", starString(evt.Stars), starString(best)), face, theme.Accent.NRGBA))

	if next, ok := nextLevel(evt.LevelID, p); ok {
		panel.AddChild(newButton("Next level", face, theme, func() { s.next = func() { s.game.OpenLevel(next) } }))
	}
	panel.AddChild(newButton("Replay", face, theme, func() { s.next = s.level.Restart }))
	panel.AddChild(newButton("Level map", face, theme, func() { s.next = s.game.ShowMap }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
