package app

import (
	"testing"
	"time"

	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/scene"
	"github.com/google/go-cmp/cmp"
)

func view(t *testing.T, a *App, id scene.ID) *scene.View {
	t.Helper()
	v, err := a.Scenes.View(id)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func solidColors(v *scene.View) []geom.Color3 {
	var out []geom.Color3
	for _, s := range v.Solids {
		out = append(out, s.Material.Color)
	}
	return out
}

func TestNewStartsEmpty(t *testing.T) {
	a := New(config.Default())
	for _, v := range a.Scenes.Views() {
		if v.Primary != nil || len(v.Solids) != 0 {
			t.Errorf("%s has geometry before the first regeneration", v.ID)
		}
	}
}

func TestRegenerateSingleFormula(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x^2"}
	a.RegenerateAll()

	g := view(t, a, scene.Graph2D).Primary
	if g == nil || len(g.Lines) != 1 {
		t.Fatalf("primary = %+v; want one line", g)
	}
	l := g.Lines[0]
	if len(l.Points) != 101 || l.Color != geom.Hex(0xFF6600) || l.Width != plot.SingleWidth {
		t.Errorf("line has %d points, colour %v, width %g", len(l.Points), l.Color, l.Width)
	}
	if l.Points[0] != geom.V2(-1, 1) || l.Points[100] != geom.V2(3, 9) {
		t.Errorf("endpoints %v, %v; want (-1,1), (3,9)", l.Points[0], l.Points[100])
	}

	if d := cmp.Diff([]geom.Color3{geom.Hex(0x007BFF)}, solidColors(view(t, a, scene.Graph3DX))); d != "" {
		t.Errorf("X solids mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]geom.Color3{geom.Hex(0x28A745)}, solidColors(view(t, a, scene.Graph3DY))); d != "" {
		t.Errorf("Y solids mismatch (-want +got):\n%s", d)
	}
}

func TestRegenerateTwoFormulas(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x", Formula2: "sqrt(x)", AText: "0", BText: "4"}
	a.RegenerateAll()

	g := view(t, a, scene.Graph2D).Primary
	if g == nil || len(g.Lines) != 2 {
		t.Fatalf("primary = %+v; want two lines", g)
	}
	for i, l := range g.Lines {
		if l.Color != plot.DefaultPalette[i] || l.Width != plot.MultiWidth {
			t.Errorf("line %d colour %v width %g", i, l.Color, l.Width)
		}
	}
	wantX := []geom.Color3{geom.Hex(0x007BFF), geom.Hex(0xFF1493)}
	if d := cmp.Diff(wantX, solidColors(view(t, a, scene.Graph3DX))); d != "" {
		t.Errorf("X solids mismatch (-want +got):\n%s", d)
	}
	wantY := []geom.Color3{geom.Hex(0x28A745), geom.Hex(0x00CED1)}
	if d := cmp.Diff(wantY, solidColors(view(t, a, scene.Graph3DY))); d != "" {
		t.Errorf("Y solids mismatch (-want +got):\n%s", d)
	}
}

func TestRegenerateSecondSlotOnly(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula2: "x + 2"}
	a.RegenerateAll()

	g := view(t, a, scene.Graph2D).Primary
	if g == nil || len(g.Lines) != 1 || g.Lines[0].Color != geom.Hex(0xFF6600) {
		t.Fatalf("primary = %+v; want one line in the single-curve colour", g)
	}
	if d := cmp.Diff([]geom.Color3{geom.Hex(0xFF1493)}, solidColors(view(t, a, scene.Graph3DX))); d != "" {
		t.Errorf("X solids mismatch (-want +got):\n%s", d)
	}
}

func TestRegenerateIsIdempotent(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x^2", Formula2: "x"}
	a.RegenerateAll()

	p, x, y := view(t, a, scene.Graph2D), view(t, a, scene.Graph3DX), view(t, a, scene.Graph3DY)
	first := p.Primary
	nx, ny := len(x.Solids), len(y.Solids)

	var released []any
	x.OnRelease = func(obj any) { released = append(released, obj) }
	oldX := append([]any(nil), x.Solids[0], x.Solids[1])

	a.RegenerateAll()

	if p.Primary == nil || p.Primary == first {
		t.Error("primary curve not replaced")
	}
	if p.Released != 1 {
		t.Errorf("plot view released %d objects; want 1", p.Released)
	}
	if len(x.Solids) != nx || len(y.Solids) != ny {
		t.Errorf("solid counts %d/%d after second run; want %d/%d", len(x.Solids), len(y.Solids), nx, ny)
	}
	if len(released) != len(oldX) {
		t.Fatalf("released %d X solids; want %d", len(released), len(oldX))
	}
	for i := range oldX {
		if released[i] != oldX[i] {
			t.Errorf("released[%d] is not the old solid", i)
		}
	}
}

func TestRegenerateWithoutFormulasKeepsPlot(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x"}
	a.RegenerateAll()
	g := view(t, a, scene.Graph2D).Primary

	a.Inputs = Inputs{Formula1: "   "}
	a.RegenerateAll()
	if view(t, a, scene.Graph2D).Primary != g {
		t.Error("plot changed with no formula entered")
	}
	for _, id := range []scene.ID{scene.Graph3DX, scene.Graph3DY} {
		if n := len(view(t, a, id).Solids); n != 0 {
			t.Errorf("%s kept %d solids", id, n)
		}
	}
}

func TestRegenerateDegenerateInterval(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x"}
	a.RegenerateAll()

	a.Inputs = Inputs{Formula1: "x", AText: "1", BText: "1"}
	a.RegenerateAll()
	if g := view(t, a, scene.Graph2D).Primary; g != nil {
		t.Errorf("primary = %+v; want nothing for A == B", g)
	}
	for _, id := range []scene.ID{scene.Graph3DX, scene.Graph3DY} {
		if n := len(view(t, a, id).Solids); n != 0 {
			t.Errorf("%s has %d solids for A == B", id, n)
		}
	}
}

func TestRegenerateUnusableMultiCurve(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x"}
	a.RegenerateAll()

	a.Inputs = Inputs{Formula1: "foo(", Formula2: "log(-1 - x*x)"}
	a.RegenerateAll()
	if g := view(t, a, scene.Graph2D).Primary; g != nil {
		t.Errorf("primary = %+v; want old curve removed and nothing drawn", g)
	}
}

func TestSolidAboutXDropsNegativeValues(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x", AText: "-2", BText: "2"}
	a.RegenerateAll()

	xs := view(t, a, scene.Graph3DX).Solids
	if len(xs) != 1 {
		t.Fatalf("%d X solids; want 1", len(xs))
	}
	for _, p := range xs[0].Profile {
		if p.Y < 0 {
			t.Fatalf("profile point %v comes from a negative value", p)
		}
	}
	ys := view(t, a, scene.Graph3DY).Solids
	if len(ys) != 1 {
		t.Fatalf("%d Y solids; want 1", len(ys))
	}
	if n := len(ys[0].Profile); n != 61 {
		t.Errorf("Y solid profile has %d points; want all 61", n)
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		a, b string
		want plot.Interval
	}{
		{"", "", plot.Interval{A: -1, B: 3}},
		{"0,5", "2", plot.Interval{A: 0.5, B: 2}},
		{"5", "2", plot.Interval{A: 2, B: 5}},
		{"abc", "4", plot.Interval{A: -1, B: 4}},
	}
	for _, tt := range tests {
		a := New(config.Default())
		a.Inputs = Inputs{AText: tt.a, BText: tt.b}
		if got := a.Interval(); got != tt.want {
			t.Errorf("Interval(%q, %q) = %v; want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClearAll(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x^2", Formula2: "x", AText: "0", BText: "1"}
	a.RegenerateAll()
	a.ClearAll()

	if a.Inputs != (Inputs{}) {
		t.Errorf("inputs = %+v; want blank", a.Inputs)
	}
	for _, v := range a.Scenes.Views() {
		if v.Primary != nil || len(v.Solids) != 0 {
			t.Errorf("%s still has geometry", v.ID)
		}
	}
	if r := view(t, a, scene.Graph3DY).Released; r != 2 {
		t.Errorf("Y view released %d solids; want 2", r)
	}
}

func TestSelectExample(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x", Formula2: "x^3"}
	a.SelectExample(config.Example{Label: "Square root", Formula: "sqrt(x)", A: 0, B: 4})

	want := Inputs{Formula1: "sqrt(x)", AText: "0", BText: "4"}
	if a.Inputs != want {
		t.Errorf("inputs = %+v; want %+v", a.Inputs, want)
	}
	if a.Regenerations != 1 {
		t.Errorf("regenerations = %d; want 1", a.Regenerations)
	}
	g := view(t, a, scene.Graph2D).Primary
	if g == nil || len(g.Lines) != 1 {
		t.Fatalf("primary = %+v; want one line", g)
	}
	pts := g.Lines[0].Points
	if pts[0] != geom.V2(0, 0) || pts[len(pts)-1] != geom.V2(4, 2) {
		t.Errorf("curve runs %v..%v; want (0,0)..(4,2)", pts[0], pts[len(pts)-1])
	}
}

func TestEventsRunOnTick(t *testing.T) {
	a := New(config.Default())
	a.RequestInputs(Inputs{Formula1: "x"})
	a.RequestRegenerate()
	if a.Regenerations != 0 {
		t.Fatal("regenerated before Tick")
	}
	a.Tick()
	if a.Regenerations != 1 || view(t, a, scene.Graph2D).Primary == nil {
		t.Fatalf("after tick: %d regenerations", a.Regenerations)
	}

	a.RequestExample(config.Example{Formula: "x^2", A: 0, B: 1})
	a.RequestClear()
	a.Tick()
	if a.Regenerations != 2 || a.Inputs != (Inputs{}) {
		t.Errorf("after tick: %d regenerations, inputs %+v; want 2, blank", a.Regenerations, a.Inputs)
	}
	if a.Events.Pending() != 0 {
		t.Errorf("%d events left queued", a.Events.Pending())
	}
}

func TestEventBusDefersNestedEmits(t *testing.T) {
	eb := NewEventBus()
	var got []EventType
	eb.On(EvtRegenerate, func(e Event) {
		got = append(got, e.Type)
		eb.Emit(Event{Type: EvtClear})
	})
	eb.On(EvtClear, func(e Event) { got = append(got, e.Type) })

	eb.Emit(Event{Type: EvtRegenerate})
	eb.Dispatch()
	if d := cmp.Diff([]EventType{EvtRegenerate}, got); d != "" {
		t.Errorf("first dispatch mismatch (-want +got):\n%s", d)
	}
	eb.Dispatch()
	if d := cmp.Diff([]EventType{EvtRegenerate, EvtClear}, got); d != "" {
		t.Errorf("second dispatch mismatch (-want +got):\n%s", d)
	}
}

func TestLoopFixedStep(t *testing.T) {
	clock := time.Unix(0, 0)
	l := NewLoop(New(config.Default()), 8)
	l.now = func() time.Time { return clock }
	l.lastTime = clock

	clock = clock.Add(250 * time.Millisecond)
	if n := l.Update(); n != 2 {
		t.Errorf("ticks after 250ms = %d; want 2", n)
	}
	clock = clock.Add(5 * time.Second)
	if n := l.Update(); n != 2 {
		t.Errorf("ticks after a 5s stall = %d; want 2 (capped)", n)
	}

	l.Paused = true
	clock = clock.Add(250 * time.Millisecond)
	if n := l.Update(); n != 0 {
		t.Errorf("ticks while paused = %d", n)
	}
	clock = clock.Add(time.Hour)
	l.Resume()
	clock = clock.Add(125 * time.Millisecond)
	if n := l.Update(); n != 1 {
		t.Errorf("ticks after resume = %d; want 1", n)
	}
}

func TestRevisionTracksInputRewrites(t *testing.T) {
	a := New(config.Default())
	a.Inputs = Inputs{Formula1: "x"}
	a.RegenerateAll()
	if a.Revision != 0 {
		t.Errorf("revision %d after a plain regeneration; want 0", a.Revision)
	}
	a.ClearAll()
	a.ClearAll()
	a.SelectExample(config.Example{Formula: "x", A: 0, B: 1})
	if a.Revision != 3 {
		t.Errorf("revision = %d; want 3", a.Revision)
	}
}
