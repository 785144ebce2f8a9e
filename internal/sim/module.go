// Package sim provides scripted mini-activity modules for headless
// simulation and integration tests.
//
// A sim [Module] stands in for a real mini-activity's input mechanics: it
// completes after a configured number of ticks with a canned typed result.
// The simulate command and the room integration tests drive a [Set] of
// these alongside the room engine's tick loop.
package sim

import (
	"fmt"
	"time"

	"kazari/internal/activity"
)

// ResultBuilder produces the module's canned result at completion time.
// The elapsed parameter is the active time between Start and completion.
type ResultBuilder func(elapsed time.Duration) activity.Result

// Module is a scripted implementation of [activity.Module] that reports
// its result after a fixed number of ticks.
type Module struct {
	activityType    activity.Type
	ticksToComplete int
	build           ResultBuilder

	running    bool
	completed  bool
	ticksSoFar int
	startedAt  time.Time
	onComplete activity.CompletionFunc
	clock      func() time.Time
}

// NewModule creates a sim module for the given activity type that
// completes after ticksToComplete calls to [Module.Tick].
func NewModule(t activity.Type, ticksToComplete int, build ResultBuilder) *Module {
	if ticksToComplete < 1 {
		ticksToComplete = 1
	}
	return &Module{
		activityType:    t,
		ticksToComplete: ticksToComplete,
		build:           build,
		clock:           time.Now,
	}
}

// ActivityType returns the activity kind this module simulates.
func (m *Module) ActivityType() activity.Type { return m.activityType }

// Running reports whether the module is between Start and Stop.
func (m *Module) Running() bool { return m.running }

// Start begins a scripted session.
func (m *Module) Start(onComplete activity.CompletionFunc) error {
	if m.running {
		return fmt.Errorf("sim: %s module already started", m.activityType)
	}
	m.running = true
	m.completed = false
	m.ticksSoFar = 0
	m.startedAt = m.clock()
	m.onComplete = onComplete
	return nil
}

// Stop releases the scripted session. Safe to call when not started.
func (m *Module) Stop() {
	m.running = false
	m.onComplete = nil
}

// Tick advances the script by one tick. On the completing tick the result
// is built and reported exactly once; the module then idles until Stop.
func (m *Module) Tick() {
	if !m.running || m.completed {
		return
	}

	m.ticksSoFar++
	if m.ticksSoFar < m.ticksToComplete {
		return
	}

	m.completed = true
	if m.onComplete != nil && m.build != nil {
		m.onComplete(m.build(m.clock().Sub(m.startedAt)))
	}
}

// Set is a collection of sim modules keyed by activity type, ticked as a
// group alongside the room engine.
type Set map[activity.Type]*Module

// Tick advances every module in the set by one tick.
func (s Set) Tick() {
	for _, m := range s {
		m.Tick()
	}
}

// Modules returns the set widened to the [activity.Module] registry shape
// the room engine expects.
func (s Set) Modules() map[activity.Type]activity.Module {
	out := make(map[activity.Type]activity.Module, len(s))
	for t, m := range s {
		out[t] = m
	}
	return out
}

// DefaultSet returns scripted modules for all three activities, each
// completing after the given number of ticks with a representative result.
func DefaultSet(ticksToComplete int) Set {
	return Set{
		activity.TypeLantern: NewModule(activity.TypeLantern, ticksToComplete,
			func(elapsed time.Duration) activity.Result {
				return activity.LanternResult{
					ResultMeta: activity.ResultMeta{
						PrefabID:   "decor/lantern",
						FinishedAt: time.Now(),
						Duration:   elapsed,
					},
					Brightness: 0.75,
				}
			}),
		activity.TypeOrigami: NewModule(activity.TypeOrigami, ticksToComplete,
			func(elapsed time.Duration) activity.Result {
				return activity.OrigamiResult{
					ResultMeta: activity.ResultMeta{
						PrefabID:   "decor/crane",
						FinishedAt: time.Now(),
						Duration:   elapsed,
					},
					Folds: 12,
				}
			}),
		activity.TypeCalligraphy: NewModule(activity.TypeCalligraphy, ticksToComplete,
			func(elapsed time.Duration) activity.Result {
				return activity.CalligraphyResult{
					ResultMeta: activity.ResultMeta{
						PrefabID:   "decor/scroll",
						FinishedAt: time.Now(),
						Duration:   elapsed,
					},
					StrokeScore: 0.9,
				}
			}),
	}
}
