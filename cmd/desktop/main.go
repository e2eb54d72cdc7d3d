package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"shootingrange/internal/config"
	"shootingrange/internal/rangegame"
	"shootingrange/internal/utility"
)

const (
	windowWidth  = 1280
	windowHeight = 800
)

// game hosts a rangegame.Engine inside an ebiten window. ebiten drives the
// frames: every Update is one engine tick.
type game struct {
	ctx     context.Context
	engine  *rangegame.Engine
	surface *frameSurface
	width   int
	height  int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.width == 0 || g.height == 0 {
		return nil
	}
	if !g.engine.Mounted() {
		if err := g.engine.Mount(g.ctx, float64(g.width), float64(g.height)); err != nil {
			return fmt.Errorf("mounting engine: %w", err)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		ox, oy := g.offset()
		x, y := rangegame.PointerToSurface(float64(cx), float64(cy), ox, oy)
		g.engine.HandleClick(x, y)
	}
	g.engine.Tick()
	return nil
}

// offset is the surface's top-left corner; the surface is centered.
func (g *game) offset() (float64, float64) {
	vp := g.engine.Snapshot().Viewport
	return (float64(g.width) - vp.Width) / 2, (float64(g.height) - vp.Height) / 2
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	ox, oy := g.offset()
	g.surface.draw(screen, ox, oy)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", g.engine.Score()), int(ox), int(oy)-16)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.engine.Mounted() {
			g.engine.Resize(float64(outsideWidth), float64(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}

func main() {
	cfg := config.Load()
	fill, err := utility.ParseHexColor(cfg.FillColor)
	if err != nil {
		log.Fatal(err.Error())
	}

	surface := &frameSurface{}
	g := &game{
		ctx:     context.Background(),
		engine:  rangegame.New(surface, rangegame.WithFill(fill)),
		surface: surface,
	}
	defer g.engine.Unmount()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Shooting Range")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		g.engine.Unmount()
		log.Fatal(err.Error())
	}
}
