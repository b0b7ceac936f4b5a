package app

import "time"

// Loop runs App.Tick at a fixed rate regardless of the render frame rate,
// so camera damping feels the same on every display.
type Loop struct {
	App      *App
	TickRate float64 // fixed ticks per second
	Paused   bool

	accumulator float64
	lastTime    time.Time
	now         func() time.Time
}

// NewLoop creates a loop with a fixed tick rate
func NewLoop(a *App, tickRate float64) *Loop {
	l := &Loop{App: a, TickRate: tickRate, now: time.Now}
	l.lastTime = l.now()
	return l
}

// Update should be called every render frame. It returns the number of
// ticks run.
func (l *Loop) Update() int {
	now := l.now()
	frameTime := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / l.TickRate
	l.accumulator += frameTime

	ticks := 0
	for l.accumulator >= dt {
		if !l.Paused {
			l.App.Tick()
			ticks++
		}
		l.accumulator -= dt
	}
	return ticks
}

// Resume restarts timing after a pause so the gap is not replayed.
func (l *Loop) Resume() {
	l.Paused = false
	l.lastTime = l.now()
}
