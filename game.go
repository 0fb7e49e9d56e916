package main

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/herbicide/controller"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/sim"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tileSize   = 48
)

// hotbar maps number keys to what a left click uses.
var hotbar = []struct {
	key  ebiten.Key
	kind component.Kind
}{
	{ebiten.Key1, component.KindBomb},
	{ebiten.Key2, component.KindBasicTreeSeed},
	{ebiten.Key3, component.KindSquirrel},
	{ebiten.Key4, component.KindBear},
	{ebiten.Key5, component.KindPorcupine},
	{ebiten.Key6, component.KindOwl},
}

var palette = map[controller.Category]color.Color{
	controller.CategoryDefender:    colornames.Sienna,
	controller.CategoryEnemy:       colornames.Olivedrab,
	controller.CategoryHazard:      colornames.Lightskyblue,
	controller.CategoryTree:        colornames.Forestgreen,
	controller.CategoryStructure:   colornames.Dimgray,
	controller.CategoryProjectile:  colornames.Goldenrod,
	controller.CategoryCollectable: colornames.Aqua,
}

type Game struct {
	level    *sim.Level
	paused   bool
	debug    bool
	quit     bool
	frames   int
	selected component.Kind
	menu     *pauseMenu

	clipboardReady bool
}

func NewGame(level *sim.Level, paused, debug bool) *Game {
	g := &Game{
		level:    level,
		paused:   paused,
		debug:    debug,
		selected: hotbar[0].kind,
	}
	g.menu = newPauseMenu(g)
	return g
}

func (g *Game) Update() error {
	g.frames++

	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	for _, slot := range hotbar {
		if inpututil.IsKeyJustPressed(slot.key) {
			g.selected = slot.kind
		}
	}

	pointer := g.pointer()
	if !g.paused && pointer.In && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if _, err := g.level.Use(string(g.selected), pointer.X, pointer.Y); err != nil {
			log.Printf("use %s: %v", g.selected, err)
		}
	}

	phase := controller.PhaseOngoing
	if g.paused {
		phase = controller.PhasePaused
		r := g.level.Report()
		g.menu.summary.Label = fmt.Sprintf("frame %d  money %d  controllers %d", r.Frame, r.Money, g.level.Manager().Len())
		g.menu.ui.Update()
	}
	g.level.Update(phase, 1/float64(ebiten.TPS()), pointer)
	return nil
}

func (g *Game) pointer() sim.Pointer {
	x, y := ebiten.CursorPosition()
	in := x >= 0 && y >= 0 && x < baseWidth && y < baseHeight
	return sim.Pointer{X: float64(x) / tileSize, Y: float64(y) / tileSize, In: in}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkkhaki)

	w := g.level.World()
	ctrls := g.level.Manager().Controllers()
	sort.SliceStable(ctrls, func(i, j int) bool {
		return layerOf(w, ctrls[i].Entity()) < layerOf(w, ctrls[j].Entity())
	})
	for _, c := range ctrls {
		g.drawController(screen, w, c)
	}

	ledger := g.level.Ledger()
	hud := fmt.Sprintf("FPS: %.2f  money: %d  seeds: %d  using: %s",
		ebiten.ActualFPS(), ledger.Money(), ledger.Items(component.KindSpeedTreeSeed), g.selected)
	ebitenutil.DebugPrint(screen, hud)
	if g.paused {
		g.menu.ui.Draw(screen)
	}
}

func (g *Game) drawController(screen *ebiten.Image, w *ecs.World, c controller.Controller) {
	x, y, ok := controller.Position(w, c.Entity())
	if !ok {
		return
	}
	radius := 0.2
	if col, ok := ecs.Get(w, c.Entity(), component.ColliderComponent); ok && col.Radius > 0 {
		radius = col.Radius
	}
	cat, _ := controller.CategoryOf(c.Kind())
	clr, ok := palette[cat]
	if !ok {
		clr = colornames.White
	}
	sx, sy := float32(x*tileSize), float32(y*tileSize)
	vector.FillCircle(screen, sx, sy, float32(radius*tileSize), clr, true)

	if h, ok := ecs.Get(w, c.Entity(), component.HealthComponent); ok && h.Max > 0 && h.Current < h.Max {
		bar := float32(tileSize) * 0.8
		vector.FillRect(screen, sx-bar/2, sy-float32(radius*tileSize)-6, bar, 3, colornames.Darkred, false)
		vector.FillRect(screen, sx-bar/2, sy-float32(radius*tileSize)-6, bar*float32(h.Current/h.Max), 3, colornames.Limegreen, false)
	}

	if !g.debug {
		return
	}
	if combat, ok := ecs.Get(w, c.Entity(), component.CombatComponent); ok {
		reach := max(combat.AttackRange, combat.ChaseRange)
		if reach > 0 {
			vector.StrokeCircle(screen, sx, sy, float32(reach*tileSize), 1, colornames.Whitesmoke, true)
		}
	}
	if t, ok := c.(controller.Targeter); ok {
		for _, target := range t.Targets() {
			tx, ty, ok := controller.Position(w, target)
			if !ok {
				continue
			}
			vector.StrokeLine(screen, sx, sy, float32(tx*tileSize), float32(ty*tileSize), 1, colornames.Red, true)
		}
	}
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if l, ok := ecs.Get(w, e, component.RenderLayerComponent); ok {
		return l.Index
	}
	return 0
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
