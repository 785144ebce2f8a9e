// Package room wires the orchestration core into a single owned context.
//
// [Engine] builds the camera engine, session coordinator, state controller,
// and placement coordinator from a configuration, a room layout, and a
// module registry, and resolves every callback subscription exactly once at
// construction. There are no package-level singletons: everything hangs off
// the engine instance, with an explicit create → wire → tick lifecycle.
//
// The engine is single-threaded: all input methods and [Engine.Tick] must
// be called from the same scheduler loop. Notifications raised during a
// tick resolve synchronously before the tick returns.
package room

import (
	"fmt"

	"go.uber.org/zap"

	"kazari/internal/activity"
	"kazari/internal/camera"
	"kazari/internal/config"
	"kazari/internal/geom"
	"kazari/internal/placement"
	"kazari/internal/session"
	"kazari/internal/state"
)

// Setup carries everything needed to build an [Engine].
type Setup struct {
	// Config supplies the tunables. Required.
	Config *config.Config

	// Layout supplies the overview pose, activity poses, and spots.
	// Required.
	Layout *config.Layout

	// Modules maps each activity type used by the layout to its module
	// implementation. Required; validated fail-fast.
	Modules map[activity.Type]activity.Module

	// Factory instantiates decoration items. Nil falls back to
	// [placement.NewDecorFactory].
	Factory placement.Factory

	// Logger is optional; nil falls back to a no-op logger.
	Logger *zap.Logger
}

// Engine is the owned orchestration context for one room.
type Engine struct {
	cfg *config.Config

	cam        *camera.Engine
	sessions   *session.Coordinator
	controller *state.Controller
	placer     *placement.Coordinator

	log *zap.Logger
}

// NewEngine builds and wires a room engine.
//
// Construction fails fast on any configuration error: invalid tunables, an
// invalid layout, an unknown easing name, or a spot whose activity type has
// no registered module or camera pose. A successfully constructed engine
// is ready to tick.
func NewEngine(s Setup) (*Engine, error) {
	if s.Config == nil {
		return nil, fmt.Errorf("room: config is required")
	}
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if s.Layout == nil {
		return nil, fmt.Errorf("room: layout is required")
	}
	if err := s.Layout.Validate(); err != nil {
		return nil, err
	}

	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	factory := s.Factory
	if factory == nil {
		factory = placement.NewDecorFactory()
	}

	ease, err := geom.EaseForName(s.Config.Camera.Easing)
	if err != nil {
		return nil, fmt.Errorf("room: camera easing %q: %w", s.Config.Camera.Easing, err)
	}

	cam := camera.NewEngine(s.Layout.Overview.Pose(), s.Config.Camera.Duration, ease, log.Named("camera"))

	entries, err := buildEntries(s.Layout, s.Modules)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewCoordinator(session.Config{
		Camera:       cam,
		Entries:      entries,
		OverviewPose: s.Layout.Overview.Pose(),
		HoldDuration: s.Config.SuccessHold,
		SkipEnabled:  s.Config.SkipEnabled,
		Logger:       log.Named("session"),
	})
	if err != nil {
		return nil, err
	}

	spots := make([]*placement.Spot, 0, len(s.Layout.Spots))
	for _, spec := range s.Layout.Spots {
		t, _ := activity.ParseType(spec.Activity)
		var anchor *geom.Pose
		if spec.Anchor != nil {
			p := spec.Anchor.Pose()
			anchor = &p
		}
		spots = append(spots, placement.NewSpot(spec.ID, t, spec.Pose.Pose(), anchor))
	}

	controller := state.NewController(s.Config.Threshold, log.Named("state"))
	placer, err := placement.NewCoordinator(spots, factory, s.Config.Threshold, log.Named("placement"))
	if err != nil {
		return nil, err
	}

	// Wire subscriptions exactly once. Components reference each other
	// only through the interfaces resolved here.
	controller.SetStarter(sessions)
	sessions.SetResultHandler(controller.ResultReady)
	sessions.SetAbortHandler(controller.SessionAborted)
	controller.OnResultReady(placer.HandleResultReady)
	placer.SetGate(controller)

	return &Engine{
		cfg:        s.Config,
		cam:        cam,
		sessions:   sessions,
		controller: controller,
		placer:     placer,
		log:        log,
	}, nil
}

// buildEntries joins the layout's activity poses with the module registry,
// covering exactly the activity types the layout's spots use.
func buildEntries(layout *config.Layout, modules map[activity.Type]activity.Module) (map[activity.Type]session.Entry, error) {
	entries := make(map[activity.Type]session.Entry)
	for _, spec := range layout.Spots {
		t, _ := activity.ParseType(spec.Activity)
		if _, done := entries[t]; done {
			continue
		}
		mod, ok := modules[t]
		if !ok || mod == nil {
			return nil, fmt.Errorf("room: no module registered for activity %q", t)
		}
		pose, ok := layout.CameraPose(t)
		if !ok {
			return nil, fmt.Errorf("room: no camera pose for activity %q", t)
		}
		entries[t] = session.Entry{Module: mod, Pose: pose}
	}
	return entries, nil
}

// Tick advances the room by dt seconds: camera motion first (arrival
// notifications may advance the session phase), then the session's timed
// phases. Each component advances at most one phase per tick.
func (e *Engine) Tick(dt float64) {
	e.cam.Tick(dt)
	e.sessions.Tick(dt)
}

// ClickSpot delivers a player click on the spot with the given ID.
func (e *Engine) ClickSpot(id string) {
	e.placer.HandleSpotClicked(id)
}

// RequestSkip delivers a player skip input. Only shortens an in-flight
// success hold; harmless at any other time.
func (e *Engine) RequestSkip() {
	e.sessions.RequestSkip()
}

// Progress returns the global progress state.
func (e *Engine) Progress() state.Progress { return e.controller.Progress() }

// Phase returns the session coordinator's phase.
func (e *Engine) Phase() session.Phase { return e.sessions.Phase() }

// ActiveType returns the activity type of the session in flight, if any.
func (e *Engine) ActiveType() activity.Type { return e.sessions.ActiveType() }

// CameraPose returns the live camera pose.
func (e *Engine) CameraPose() geom.Pose { return e.cam.Pose() }

// CameraMoving reports whether a camera transition is in flight.
func (e *Engine) CameraMoving() bool { return e.cam.IsMoving() }

// Spots returns the ordered placement spots.
func (e *Engine) Spots() []*placement.Spot { return e.placer.Spots() }

// PlacedCount returns the placed-item tally.
func (e *Engine) PlacedCount() int { return e.placer.PlacedCount() }

// Threshold returns the completion threshold.
func (e *Engine) Threshold() int { return e.controller.Threshold() }

// Done reports whether the room has reached its terminal complete state.
func (e *Engine) Done() bool { return e.controller.Progress() == state.ProgressRoomComplete }

// OnStateChanged registers an observer for progress transitions.
func (e *Engine) OnStateChanged(cb state.StateChangeFunc) { e.controller.OnStateChanged(cb) }

// OnItemPlaced registers an observer for placements.
func (e *Engine) OnItemPlaced(cb placement.PlacedFunc) { e.placer.OnItemPlaced(cb) }

// OnRoomComplete registers an observer for room completion.
func (e *Engine) OnRoomComplete(cb placement.CompleteFunc) { e.placer.OnRoomComplete(cb) }
