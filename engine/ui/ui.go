package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/solids/engine/app"
	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/input"
	"github.com/1siamBot/solids/engine/ui/field"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	rowH    = 24
	fieldH  = 22
	padding = 10
	// ebitenutil debug font cell
	charW = 6
)

var (
	panelBg     = color.RGBA{20, 20, 40, 230}
	fieldBg     = color.RGBA{40, 40, 70, 255}
	fieldBorder = color.RGBA{100, 100, 160, 255}
	focusBorder = color.RGBA{255, 140, 40, 255}
	plotBtn     = color.RGBA{40, 110, 60, 255}
	clearBtn    = color.RGBA{110, 50, 50, 255}
	rowHover    = color.RGBA{60, 60, 100, 255}
)

type button struct {
	X, Y, W, H int
	Text       string
	Color      color.RGBA
}

// Sidebar is the input panel: formula and bound fields, the Plot and Clear
// buttons and the examples table.
type Sidebar struct {
	X, Y, W, H int

	Formula1, Formula2, A, B *field.Field
	ring                     *field.Ring

	Examples []config.Example
	hoverRow int

	app      *app.App
	revision uint64
	tick     int

	plot, clear button
}

func NewSidebar(a *app.App, x, y, w, h int) *Sidebar {
	s := &Sidebar{
		X: x, Y: y, W: w, H: h,
		Formula1: &field.Field{Label: "f1(x)", Max: 64},
		Formula2: &field.Field{Label: "f2(x)", Max: 64},
		A:        &field.Field{Label: "a", Max: 16},
		B:        &field.Field{Label: "b", Max: 16},
		Examples: a.Config.Examples,
		hoverRow: -1,
		app:      a,
	}
	s.ring = field.NewRing(s.Formula1, s.Formula2, s.A, s.B)
	s.set(a.Inputs)
	s.revision = a.Revision

	by := s.fieldY(len(s.ring.Fields)) + padding
	bw := (w - 3*padding) / 2
	s.plot = button{X: x + padding, Y: by, W: bw, H: rowH, Text: "Plot", Color: plotBtn}
	s.clear = button{X: x + 2*padding + bw, Y: by, W: bw, H: rowH, Text: "Clear", Color: clearBtn}
	return s
}

func (s *Sidebar) fieldY(i int) int { return s.Y + 30 + i*(fieldH+20) }

func (s *Sidebar) examplesY() int { return s.plot.Y + rowH + 30 }

// Inputs returns the field contents.
func (s *Sidebar) Inputs() app.Inputs {
	return app.Inputs{
		Formula1: s.Formula1.Text,
		Formula2: s.Formula2.Text,
		AText:    s.A.Text,
		BText:    s.B.Text,
	}
}

// pull copies the app's inputs into the fields when an operation such as
// Clear or an example rewrote them.
func (s *Sidebar) pull() {
	if s.app.Revision == s.revision {
		return
	}
	s.set(s.app.Inputs)
	s.revision = s.app.Revision
}

func (s *Sidebar) set(in app.Inputs) {
	s.Formula1.Text, s.Formula2.Text = in.Formula1, in.Formula2
	s.A.Text, s.B.Text = in.AText, in.BText
}

func (s *Sidebar) submit() {
	s.app.RequestInputs(s.Inputs())
	s.app.RequestRegenerate()
}

// Contains reports whether the point is over the sidebar.
func (s *Sidebar) Contains(x, y int) bool {
	return x >= s.X && x < s.X+s.W && y >= s.Y && y < s.Y+s.H
}

// Update handles clicks and typing. It returns true if the sidebar consumed
// the mouse this frame.
func (s *Sidebar) Update(in *input.InputState) bool {
	s.tick++
	s.pull()

	if f := s.ring.Focused(); f != nil {
		f.Insert(in.Chars)
		if in.Backspace {
			f.Backspace()
		}
		switch {
		case in.Enter:
			s.submit()
		case in.Escape:
			s.ring.Blur()
		}
	}
	if in.Tab {
		if in.Shift {
			s.ring.Prev()
		} else {
			s.ring.Next()
		}
	}

	s.hoverRow = -1
	if !s.Contains(in.MouseX, in.MouseY) {
		if in.LeftJustPressed {
			s.ring.Blur()
		}
		return false
	}
	ey := s.examplesY() + rowH
	for i := range s.Examples {
		if in.In(s.X+padding, ey+i*rowH, s.W-2*padding, rowH) {
			s.hoverRow = i
		}
	}
	if !in.LeftJustPressed {
		return true
	}

	for i := range s.ring.Fields {
		if in.In(s.X+padding, s.fieldY(i)+14, s.W-2*padding, fieldH) {
			s.ring.Focus = i
			return true
		}
	}
	switch {
	case in.In(s.plot.X, s.plot.Y, s.plot.W, s.plot.H):
		s.submit()
	case in.In(s.clear.X, s.clear.Y, s.clear.W, s.clear.H):
		s.app.RequestClear()
	case s.hoverRow >= 0:
		s.app.RequestExample(s.Examples[s.hoverRow])
	}
	return true
}

// Draw renders the sidebar
func (s *Sidebar) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), panelBg, false)
	ebitenutil.DebugPrintAt(screen, "=== FUNCTIONS ===", s.X+padding, s.Y+8)

	for i, f := range s.ring.Fields {
		y := s.fieldY(i)
		ebitenutil.DebugPrintAt(screen, f.Label, s.X+padding, y)
		fx, fy := float32(s.X+padding), float32(y+14)
		fw := float32(s.W - 2*padding)
		border := fieldBorder
		if s.ring.Focus == i {
			border = focusBorder
		}
		vector.DrawFilledRect(screen, fx, fy, fw, fieldH, fieldBg, false)
		vector.StrokeRect(screen, fx, fy, fw, fieldH, 1, border, false)

		text := f.Tail((s.W - 2*padding - 10) / charW)
		if s.ring.Focus == i && s.tick/30%2 == 0 {
			text += "_"
		}
		ebitenutil.DebugPrintAt(screen, text, s.X+padding+5, y+18)
	}

	for _, b := range []button{s.plot, s.clear} {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), b.Color, false)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, color.RGBA{150, 150, 200, 255}, false)
		ebitenutil.DebugPrintAt(screen, b.Text, b.X+(b.W-len(b.Text)*charW)/2, b.Y+5)
	}

	ey := s.examplesY()
	ebitenutil.DebugPrintAt(screen, "=== EXAMPLES ===", s.X+padding, ey)
	for i, ex := range s.Examples {
		y := ey + rowH + i*rowH
		if i == s.hoverRow {
			vector.DrawFilledRect(screen, float32(s.X+padding), float32(y), float32(s.W-2*padding), rowH, rowHover, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-16s %s [%g, %g]", ex.Label, ex.Formula, ex.A, ex.B), s.X+padding+5, y+5)
	}

	iv := s.app.Interval()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("interval [%g, %g]", iv.A, iv.B), s.X+padding, s.Y+s.H-40)
	ebitenutil.DebugPrintAt(screen, "drag: orbit/pan  wheel: zoom", s.X+padding, s.Y+s.H-22)
}
