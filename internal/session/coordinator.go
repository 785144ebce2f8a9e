// Package session provides the mini-activity lifecycle coordinator.
//
// A session is one complete run of a mini-activity: camera move to the
// activity's pose, module activation on arrival, module completion, a timed
// (skippable) success hold, module shutdown, camera return, and finally
// result publication. The coordinator expresses this as an explicit
// multi-tick phase machine rather than a suspended routine: each phase
// advance happens either inside a camera-arrival notification or inside the
// per-frame [Coordinator.Tick].
//
// At most one session is active at a time; the coordinator's phase check is
// the single authoritative guard for that invariant.
package session

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kazari/internal/activity"
	"kazari/internal/camera"
	"kazari/internal/geom"
)

// Phase describes where an activity session is in its lifecycle.
type Phase string

const (
	// PhaseIdle means no session is active.
	PhaseIdle Phase = "idle"
	// PhaseAwaitingArrival means the camera is moving toward the
	// activity's pose; the module activates on arrival.
	PhaseAwaitingArrival Phase = "awaiting-arrival"
	// PhaseActive means the mini-activity module is running.
	PhaseActive Phase = "active"
	// PhaseSuccessHold is the timed, skippable pause after the module
	// reported its result.
	PhaseSuccessHold Phase = "success-hold"
	// PhaseReturningCamera means the camera is moving back to the room
	// overview; the result publishes on arrival.
	PhaseReturningCamera Phase = "returning-camera"
)

// Sentinel errors for session start requests.
var (
	// ErrSessionActive indicates a start request arrived while a session
	// was already in a non-idle phase. The request is a no-op.
	ErrSessionActive = errors.New("activity session already active")

	// ErrUnknownActivity indicates no module/pose mapping is registered
	// for the requested activity type. Configuration error; the phase
	// machine does not advance.
	ErrUnknownActivity = errors.New("no registration for activity type")
)

// DefaultHoldDuration is the success-hold length in seconds when none is
// configured.
const DefaultHoldDuration = 2.0

// Entry binds an activity type to its module handle and camera pose target.
type Entry struct {
	Module activity.Module
	Pose   geom.Pose
}

// ResultHandlerFunc receives the session's result after the camera has
// returned to the room overview. The state controller's ResultReady is
// wired here.
type ResultHandlerFunc func(res activity.Result)

// AbortHandlerFunc is notified when a session ends without a result (the
// module failed to start). The state controller's SessionAborted is wired
// here so the room returns to accepting clicks.
type AbortHandlerFunc func()

// Config holds the coordinator's wiring and tunables.
type Config struct {
	// Camera is the transition engine the coordinator drives. Required.
	Camera *camera.Engine

	// Entries maps each activity type to its module and camera pose.
	// Validated at construction: every entry needs a module, and every
	// key must be a known activity type.
	Entries map[activity.Type]Entry

	// OverviewPose is the room-overview camera target used for the
	// return leg of every session.
	OverviewPose geom.Pose

	// HoldDuration is the success-hold length in seconds. Non-positive
	// values fall back to [DefaultHoldDuration].
	HoldDuration float64

	// SkipEnabled controls whether a skip request can shorten the
	// success hold.
	SkipEnabled bool

	// Logger is optional; nil falls back to a no-op logger.
	Logger *zap.Logger
}

// Coordinator drives one mini-activity session at a time through its phase
// machine. Create with [NewCoordinator]; it subscribes to the camera's
// movement-complete notification during construction, so wiring happens
// exactly once.
type Coordinator struct {
	cam      *camera.Engine
	entries  map[activity.Type]Entry
	overview geom.Pose
	holdFor  float64
	skipOK   bool

	phase         Phase
	activeType    activity.Type
	activeModule  activity.Module
	result        activity.Result
	skipRequested bool
	holdElapsed   float64
	startedAt     time.Time

	resultHandler ResultHandlerFunc
	abortHandler  AbortHandlerFunc
	clock         func() time.Time

	log *zap.Logger
}

// NewCoordinator validates cfg and creates an idle coordinator.
//
// Fails fast on configuration errors: a nil camera, an empty registry, an
// unknown activity type key, or an entry without a module all return an
// error so a misconfigured room never starts ticking.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if cfg.Camera == nil {
		return nil, errors.New("session: camera engine is required")
	}
	if len(cfg.Entries) == 0 {
		return nil, errors.New("session: at least one activity entry is required")
	}
	for t, entry := range cfg.Entries {
		if !t.IsValid() {
			return nil, fmt.Errorf("session: unknown activity type %q in registry", t)
		}
		if entry.Module == nil {
			return nil, fmt.Errorf("session: activity %q has no module", t)
		}
	}

	hold := cfg.HoldDuration
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Coordinator{
		cam:      cfg.Camera,
		entries:  cfg.Entries,
		overview: cfg.OverviewPose,
		holdFor:  hold,
		skipOK:   cfg.SkipEnabled,
		phase:    PhaseIdle,
		clock:    time.Now,
		log:      log,
	}
	c.cam.OnMovementComplete(c.handleCameraArrived)
	return c, nil
}

// SetResultHandler connects the state controller's result intake. Resolved
// once during wiring.
func (c *Coordinator) SetResultHandler(h ResultHandlerFunc) { c.resultHandler = h }

// SetAbortHandler connects the state controller's aborted-session intake.
// Resolved once during wiring.
func (c *Coordinator) SetAbortHandler(h AbortHandlerFunc) { c.abortHandler = h }

// SetClock overrides the completion-timestamp source. Used by tests.
func (c *Coordinator) SetClock(clock func() time.Time) {
	if clock != nil {
		c.clock = clock
	}
}

// Phase returns the current session phase.
func (c *Coordinator) Phase() Phase { return c.phase }

// ActiveType returns the activity type of the session in flight, or the
// zero value when idle.
func (c *Coordinator) ActiveType() activity.Type { return c.activeType }

// StartActivity begins a session for the given activity type.
//
// Returns [ErrSessionActive] (warn, no-op) if a session is already in a
// non-idle phase, and [ErrUnknownActivity] if the type has no registered
// entry; in both cases the phase machine does not advance. On acceptance
// the coordinator defensively stops any leftover module, enters
// [PhaseAwaitingArrival], and asks the camera to move to the activity's
// pose.
func (c *Coordinator) StartActivity(t activity.Type) error {
	if c.phase != PhaseIdle {
		c.log.Warn("activity start ignored: session in flight",
			zap.String("requested", string(t)),
			zap.String("phase", string(c.phase)))
		return ErrSessionActive
	}

	entry, ok := c.entries[t]
	if !ok {
		c.log.Error("activity start rejected: unregistered type",
			zap.String("requested", string(t)))
		return ErrUnknownActivity
	}

	// Leftover module from an aborted session; stopping twice is safe.
	if c.activeModule != nil {
		c.activeModule.Stop()
	}

	c.activeType = t
	c.activeModule = entry.Module
	c.result = nil
	c.skipRequested = false
	c.startedAt = c.clock()
	c.setPhase(PhaseAwaitingArrival)
	c.cam.MoveTo(entry.Pose)
	return nil
}

// RequestSkip latches a skip request. Only honored during
// [PhaseSuccessHold] and only when skipping is enabled; it never shortens
// the camera return.
func (c *Coordinator) RequestSkip() {
	if c.phase != PhaseSuccessHold {
		return
	}
	if !c.skipOK {
		c.log.Debug("skip request ignored: skipping disabled")
		return
	}
	c.skipRequested = true
}

// Tick advances the success-hold timer by dt seconds. All other phases
// advance through camera or module notifications, so Tick is a no-op
// outside [PhaseSuccessHold].
func (c *Coordinator) Tick(dt float64) {
	if c.phase != PhaseSuccessHold {
		return
	}

	c.holdElapsed += dt
	if c.skipRequested || c.holdElapsed >= c.holdFor {
		c.finishHold()
	}
}

// SessionElapsed returns how long the current session has been running.
// Zero when idle.
func (c *Coordinator) SessionElapsed() time.Duration {
	if c.phase == PhaseIdle {
		return 0
	}
	return c.clock().Sub(c.startedAt)
}

// handleCameraArrived is the camera's movement-complete subscriber. The
// camera contract guarantees the pose has snapped to the target before this
// runs.
func (c *Coordinator) handleCameraArrived(target geom.Pose) {
	switch c.phase {
	case PhaseAwaitingArrival:
		// Enter the active phase before starting the module: a module may
		// report its result synchronously inside Start, and that
		// completion must find the session already active.
		c.setPhase(PhaseActive)
		if err := c.activeModule.Start(c.handleModuleComplete); err != nil {
			c.log.Error("module start failed, aborting session",
				zap.String("activity", string(c.activeType)),
				zap.Error(err))
			c.activeModule.Stop()
			c.result = nil
			c.setPhase(PhaseReturningCamera)
			c.cam.MoveTo(c.overview)
		}

	case PhaseReturningCamera:
		c.wrapUp()
	}
}

// handleModuleComplete receives the active module's typed result.
func (c *Coordinator) handleModuleComplete(res activity.Result) {
	if c.phase != PhaseActive {
		c.log.Warn("module result dropped: session not active",
			zap.String("phase", string(c.phase)))
		return
	}
	if res == nil {
		c.log.Warn("module reported nil result",
			zap.String("activity", string(c.activeType)))
		return
	}

	c.result = res
	c.holdElapsed = 0
	c.skipRequested = false
	c.setPhase(PhaseSuccessHold)
}

// finishHold ends the success hold: the module releases its visuals and
// the camera heads back to the room overview.
func (c *Coordinator) finishHold() {
	c.activeModule.Stop()
	c.setPhase(PhaseReturningCamera)
	c.cam.MoveTo(c.overview)
}

// wrapUp resets the session and publishes the stored result, if any. The
// phase always returns to idle so the coordinator never gets stuck, even
// on the defensive no-result path.
func (c *Coordinator) wrapUp() {
	res := c.result
	finished := c.activeType

	c.result = nil
	c.activeType = ""
	c.activeModule = nil
	c.skipRequested = false
	c.holdElapsed = 0
	c.setPhase(PhaseIdle)

	if res == nil {
		c.log.Warn("session ended without a result; reporting abort",
			zap.String("activity", string(finished)))
		if c.abortHandler != nil {
			c.abortHandler()
		}
		return
	}
	if c.resultHandler == nil {
		c.log.Error("no result handler wired; dropping result",
			zap.String("activity", string(finished)))
		return
	}
	c.resultHandler(res)
}

func (c *Coordinator) setPhase(next Phase) {
	c.log.Debug("session phase changed",
		zap.String("old", string(c.phase)),
		zap.String("new", string(next)))
	c.phase = next
}
