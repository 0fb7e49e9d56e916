package main

import (
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// pauseMenu is the overlay shown while the game is paused.
type pauseMenu struct {
	ui      *ebitenui.UI
	summary *widget.Text
}

// newPauseMenu builds a centered panel with the level summary and Resume,
// Copy report and Quit buttons. Buttons use colored nine-slices and the
// built-in basic font, so no theme assets are needed.
func newPauseMenu(g *Game) *pauseMenu {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x2f, G: 0x4f, B: 0x2f, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	summary := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(summary)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Copy report", g.copyReport))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	return &pauseMenu{ui: &ebitenui.UI{Container: root}, summary: summary}
}

// copyReport puts the level report on the system clipboard as YAML.
func (g *Game) copyReport() {
	out, err := g.level.ReportYAML()
	if err != nil {
		log.Printf("report: %v", err)
		return
	}
	if !g.clipboardReady {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v\n%s", err, out)
			return
		}
		g.clipboardReady = true
	}
	clipboard.Write(clipboard.FmtText, out)
	log.Printf("report copied to clipboard (%d bytes)", len(out))
}
