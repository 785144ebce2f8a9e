// Package camera provides the camera transition engine: interruptible
// interpolated motion between poses with lifecycle notifications.
//
// The engine owns the live camera pose and knows nothing about game
// semantics. A [Engine.MoveTo] request cancels any in-flight transition
// (cancel-and-replace, no rollback) and interpolation restarts from the
// current interpolated point. Motion advances one step per [Engine.Tick];
// on the tick where elapsed time reaches the configured duration the pose
// snaps exactly to the target before the movement-complete notification
// fires, so subscribers can rely on the camera being at rest at the
// intended pose.
package camera

import (
	"go.uber.org/zap"

	"kazari/internal/geom"
)

// MotionFunc is notified with the transition's target pose when a movement
// starts or completes.
type MotionFunc func(target geom.Pose)

// Engine interpolates the live camera pose toward requested targets.
//
// Engine is single-threaded: MoveTo, Tick, and the query methods must all
// be called from the scheduler's tick loop. Notifications run synchronously
// inside the call that raises them.
type Engine struct {
	pose     geom.Pose
	start    geom.Pose
	target   geom.Pose
	duration float64
	elapsed  float64
	moving   bool
	ease     geom.EaseFunc

	started  []MotionFunc
	complete []MotionFunc

	log *zap.Logger
}

// NewEngine creates an engine at the given initial pose. Transitions take
// duration seconds and pass normalized progress through ease. A nil ease
// falls back to [geom.Linear]; a nil logger falls back to a no-op logger.
func NewEngine(initial geom.Pose, duration float64, ease geom.EaseFunc, log *zap.Logger) *Engine {
	if ease == nil {
		ease = geom.Linear
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		pose:     initial,
		duration: duration,
		ease:     ease,
		log:      log,
	}
}

// OnMovementStarted registers a callback fired when a transition begins.
// Registration happens once during component wiring; there is no
// unsubscribe.
func (e *Engine) OnMovementStarted(cb MotionFunc) {
	e.started = append(e.started, cb)
}

// OnMovementComplete registers a callback fired after the pose has snapped
// exactly to the target. This is the signal coordinators use to gate
// dependent actions.
func (e *Engine) OnMovementComplete(cb MotionFunc) {
	e.complete = append(e.complete, cb)
}

// Pose returns the live camera pose.
func (e *Engine) Pose() geom.Pose { return e.pose }

// IsMoving reports whether a transition is in flight.
func (e *Engine) IsMoving() bool { return e.moving }

// MoveTo starts a transition to target. An in-flight transition is
// cancelled immediately: the camera stays at its current interpolated point
// and the new interpolation starts from there. There is no queuing of
// pending moves.
//
// A non-positive configured duration completes the move synchronously
// within this call.
func (e *Engine) MoveTo(target geom.Pose) {
	if e.moving {
		e.log.Debug("camera transition replaced in flight",
			zap.Any("abandoned_target", e.target))
	}

	e.start = e.pose
	e.target = target
	e.elapsed = 0
	e.moving = true
	e.notify(e.started, target)

	if e.duration <= 0 {
		e.finish()
	}
}

// Tick advances an in-flight transition by dt seconds. A no-op when the
// camera is at rest.
func (e *Engine) Tick(dt float64) {
	if !e.moving {
		return
	}

	e.elapsed += dt
	if e.elapsed >= e.duration {
		e.finish()
		return
	}

	t := e.ease(e.elapsed / e.duration)
	e.pose = e.start.Lerp(e.target, t)
}

// finish snaps to the target pose and fires the completion notification.
// The snap happens before notifying so floating-point drift never leaves
// the camera short of the target when subscribers observe it.
func (e *Engine) finish() {
	e.pose = e.target
	e.moving = false
	e.notify(e.complete, e.target)
}

func (e *Engine) notify(subs []MotionFunc, target geom.Pose) {
	for _, cb := range subs {
		cb(target)
	}
}
