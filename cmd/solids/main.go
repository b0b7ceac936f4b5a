package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/1siamBot/solids/engine/app"
	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/input"
	"github.com/1siamBot/solids/engine/render3d"
	"github.com/1siamBot/solids/engine/revolve"
	"github.com/1siamBot/solids/engine/scene"
	"github.com/1siamBot/solids/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	TickRate = 60.0
	gap      = 10
	titleH   = 18
)

type panel struct {
	id         scene.ID
	title      string
	x, y, w, h int
}

func (p panel) contains(mx, my int) bool {
	return mx >= p.x && mx < p.x+p.w && my >= p.y && my < p.y+p.h
}

// Game implements ebiten.Game interface
type Game struct {
	cfg      *config.Config
	app      *app.App
	loop     *app.Loop
	input    *input.InputState
	renderer *render3d.Renderer3D
	sidebar  *ui.Sidebar

	panels []panel
	info   panel
	active int // panel being dragged, -1 for none
}

func NewGame(cfg *config.Config) *Game {
	a := app.New(cfg)
	w := cfg.Window
	col := func(i int) int { return w.SidebarWidth + gap + i*(w.PanelWidth+gap) }
	row := func(i int) int { return gap + i*(w.PanelHeight+gap) }

	g := &Game{
		cfg:      cfg,
		app:      a,
		loop:     app.NewLoop(a, TickRate),
		input:    input.NewInputState(),
		renderer: render3d.NewRenderer3D(a.Scenes.Views()),
		sidebar:  ui.NewSidebar(a, 0, 0, w.SidebarWidth, w.Height),
		panels: []panel{
			{scene.Graph2D, "f(x)", col(0), row(0), w.PanelWidth, w.PanelHeight},
			{scene.Graph3DX, "revolution about X", col(1), row(0), w.PanelWidth, w.PanelHeight},
			{scene.Graph3DY, "revolution about Y", col(0), row(1), w.PanelWidth, w.PanelHeight},
		},
		info:   panel{title: "info", x: col(1), y: row(1), w: w.PanelWidth, h: w.PanelHeight},
		active: -1,
	}

	if len(cfg.Examples) > 0 {
		a.SelectExample(cfg.Examples[0])
	} else {
		a.RegenerateAll()
	}
	return g
}

func (g *Game) view(id scene.ID) *scene.View {
	v, err := g.app.Scenes.View(id)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	return v
}

func (g *Game) Update() error {
	g.input.Update()

	if !g.sidebar.Update(g.input) {
		g.handleCamera()
	}

	// Views stop animating while the window is in the background.
	switch focused := ebiten.IsFocused(); {
	case !focused:
		g.loop.Paused = true
	case g.loop.Paused:
		g.loop.Resume()
	}
	g.loop.Update()
	return nil
}

// handleCamera routes drags and the wheel to the panel under the cursor.
// Left drag orbits the solid views and pans the plot; right drag pans.
func (g *Game) handleCamera() {
	in := g.input
	if in.LeftJustPressed || in.RightJustPressed {
		g.active = -1
		for i, p := range g.panels {
			if p.contains(in.MouseX, in.MouseY) {
				g.active = i
			}
		}
	}
	if !in.LeftPressed && !in.RightPressed {
		g.active = -1
	}

	if g.active >= 0 {
		v := g.view(g.panels[g.active].id)
		dx, dy := float64(in.MouseDX), float64(in.MouseDY)
		switch {
		case v == nil:
		case in.LeftPressed && v.Camera.EnableRotate:
			v.Camera.Rotate(dx, dy)
		case in.LeftPressed || in.RightPressed:
			v.Camera.Pan(dx, dy)
		}
	}

	if in.ScrollY != 0 {
		for _, p := range g.panels {
			if p.contains(in.MouseX, in.MouseY) {
				if v := g.view(p.id); v != nil {
					v.Camera.ZoomBy(in.ScrollY)
				}
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Clear screen with dark background
	screen.Fill(color.RGBA{20, 20, 30, 255})

	g.renderer.BeginFrame()
	for _, p := range g.panels {
		if v := g.view(p.id); v != nil {
			g.renderer.DrawView(screen, v, p.x, p.y, p.w, p.h)
		}
		vector.DrawFilledRect(screen, float32(p.x), float32(p.y), float32(p.w), titleH, color.RGBA{0, 0, 0, 160}, false)
		ebitenutil.DebugPrintAt(screen, p.title, p.x+6, p.y+1)
	}
	g.drawCursor(screen)
	g.sidebar.Draw(screen)
	g.drawInfo(screen)
}

// drawCursor shows the plot coordinates under the mouse.
func (g *Game) drawCursor(screen *ebiten.Image) {
	p := g.panels[0]
	mx, my := g.input.MouseX, g.input.MouseY
	if !p.contains(mx, my) {
		return
	}
	v := g.view(p.id)
	if v == nil {
		return
	}
	x, y := v.Camera.ScreenToPlane(float64(mx-p.x), float64(my-p.y))
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("x = %.3f  y = %.3f", x, y), p.x+p.w-170, p.y+1)
}

func (g *Game) drawInfo(screen *ebiten.Image) {
	p := g.info
	vector.DrawFilledRect(screen, float32(p.x), float32(p.y), float32(p.w), float32(p.h), color.RGBA{20, 20, 40, 230}, false)

	iv := g.app.Interval()
	in := g.app.Inputs
	info := fmt.Sprintf(
		"FPS: %.0f | Triangles: %d\n"+
			"Interval: [%g, %g] | curve %d segments, solids %d segments\n\n"+
			"f1(x) = %s\n"+
			"f2(x) = %s\n",
		ebiten.ActualFPS(), g.renderer.Triangles,
		iv.A, iv.B, g.cfg.Sampling.CurveSegments, g.cfg.Sampling.RadialSegments,
		in.Formula1, in.Formula2,
	)
	for _, id := range []scene.ID{scene.Graph3DX, scene.Graph3DY} {
		v := g.view(id)
		if v == nil {
			continue
		}
		info += fmt.Sprintf("\n%s: %d solid(s)", id, len(v.Solids))
		for _, s := range v.Solids {
			info += fmt.Sprintf("\n  %s about %v, %d triangles", s.Formula, s.Axis, s.Mesh.TriangleCount())
		}
	}
	ebitenutil.DebugPrintAt(screen, info, p.x+10, p.y+10)

	// Slot colour swatches
	for slot := 0; slot < 2; slot++ {
		for j, axis := range []revolve.Axis{revolve.AxisX, revolve.AxisY} {
			c := g.cfg.SolidColor(axis, slot)
			r, gr, b := c.RGBA8()
			x := float32(p.x + p.w - 60 + j*24)
			y := float32(p.y + 58 + slot*16)
			vector.DrawFilledRect(screen, x, y, 18, 12, color.RGBA{r, gr, b, 255}, false)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func main() {
	configPath := flag.String("config", "", "TOML settings file (default: built-in)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Window %dx%d, panels %dx%d, %d examples",
		cfg.Window.Width, cfg.Window.Height, cfg.Window.PanelWidth, cfg.Window.PanelHeight, len(cfg.Examples))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(cfg)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
