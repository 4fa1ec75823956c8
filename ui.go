package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/zensnap/config"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// uiFace wraps the built-in basic font so no theme fonts need loading.
func uiFace() *ebtext.Face {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	return &face
}

func newButton(label string, face *ebtext.Face, theme config.ThemeConfig, onClick func()) *widget.Button {
	idle := imageui.NewNineSliceColor(theme.Accent.NRGBA)
	pressed := imageui.NewNineSliceColor(darken(theme.Accent.NRGBA, 0.8))
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: idle, Pressed: pressed}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(88, 28),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func newLabel(label string, face *ebtext.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// newHUD builds the puzzle screen's top-right button row.
func newHUD(s *puzzleScreen) *ebitenui.UI {
	face := uiFace()
	theme := s.game.app.cfg.Theme

	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	row.AddChild(newButton("Map", face, theme, func() { s.next = s.game.ShowMap }))
	var soundBtn *widget.Button
	soundBtn = newButton(soundLabel(s.game.app.cue.Enabled()), face, theme, func() {
		on := s.game.app.cue.Toggle()
		if text := soundBtn.Text(); text != nil {
			text.Label = soundLabel(on)
		}
	})
	row.AddChild(soundBtn)
	row.AddChild(newButton("Restart", face, theme, func() { s.next = s.level.Restart }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(row)
	return &ebitenui.UI{Container: root}
}

func soundLabel(on bool) string {
	if on {
		return "Sound: On"
	}
	return "Sound: Off"
}

func darken(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}
