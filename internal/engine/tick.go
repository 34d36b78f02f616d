// Package engine provides the tick-based simulation loop and the agent
// behavior that runs inside it.
package engine

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// TickSchedule defines when each callback layer runs relative to the tick counter.
const (
	TicksPerSimHour = 60   // 60 ticks = 1 sim-hour
	TicksPerSimDay  = 1440 // 24 hours × 60
)

// Engine drives the simulation forward.
type Engine struct {
	Tick      uint64        // Current tick counter (monotonic, never resets)
	Speed     float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval  time.Duration // Base tick interval; zero runs flat out
	StopAfter uint64        // Stop once Tick reaches this value; zero runs until Stop

	running atomic.Bool

	// Callbacks for each tick layer, populated during setup.
	OnTick func(tick uint64) // Every tick (sim-minute)
	OnHour func(tick uint64) // Every 60 ticks
	OnDay  func(tick uint64) // Every 1440 ticks
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: 100 * time.Millisecond,
	}
}

// Run starts the simulation loop. Blocks until Stop is called or StopAfter
// is reached.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed, "stop_after", e.StopAfter)

	for e.running.Load() {
		if e.Speed <= 0 {
			// Paused; sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.step()

		if e.StopAfter > 0 && e.Tick >= e.StopAfter {
			e.running.Store(false)
			break
		}

		// Sleep for the remainder of the tick interval, adjusted for speed.
		if e.Interval > 0 {
			elapsed := time.Since(start)
			target := time.Duration(float64(e.Interval) / e.Speed)
			if elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the simulation loop after the current tick. Safe to call from
// another goroutine.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether the loop is active.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++

	// Every tick: agent updates, item decay, sweeps.
	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	// Every sim-hour: journal flush.
	if e.Tick%TicksPerSimHour == 0 && e.OnHour != nil {
		e.OnHour(e.Tick)
	}

	// Every sim-day: census report.
	if e.Tick%TicksPerSimDay == 0 && e.OnDay != nil {
		e.OnDay(e.Tick)
	}
}

// SimTime returns a human-readable simulation time string from a tick number.
func SimTime(tick uint64) string {
	minutes := tick % 60
	totalHours := tick / 60
	hours := totalHours % 24
	days := totalHours/24 + 1

	return fmt.Sprintf("Day %d, %d:%02d", days, hours, minutes)
}
