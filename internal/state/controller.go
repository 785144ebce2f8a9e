package state

import (
	"go.uber.org/zap"

	"kazari/internal/activity"
)

// ActivityStarter is the contract the session coordinator satisfies.
//
// StartActivity begins a session for the given activity type. The session
// coordinator's phase check is the single authoritative "already active"
// guard; an error return means the request did not start a session and the
// controller must not advance its progress state.
type ActivityStarter interface {
	StartActivity(t activity.Type) error
}

// StateChangeFunc observes accepted progress transitions.
type StateChangeFunc func(old, new Progress)

// ResultFunc observes the "result ready" notification published when a
// session's result is accepted.
type ResultFunc func(res activity.Result)

// Controller owns the room's progress state and the required-item
// threshold. It validates every request, re-broadcasts state transitions,
// and publishes result-ready notifications to subscribers.
//
// Use [NewController] to create one, wire subscriptions once with
// [Controller.OnStateChanged] / [Controller.OnResultReady], and connect the
// session coordinator with [Controller.SetStarter] before the first tick.
type Controller struct {
	progress    Progress
	threshold   int
	placedCount int

	starter    ActivityStarter
	stateSubs  []StateChangeFunc
	resultSubs []ResultFunc

	log *zap.Logger
}

// DefaultThreshold is the placed-item count required for room completion
// when no threshold is configured.
const DefaultThreshold = 3

// NewController creates a controller in [ProgressAwaitingPlacement] with
// the given completion threshold. A non-positive threshold falls back to
// [DefaultThreshold]; a nil logger falls back to a no-op logger.
func NewController(threshold int, log *zap.Logger) *Controller {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		progress:  ProgressAwaitingPlacement,
		threshold: threshold,
		log:       log,
	}
}

// SetStarter connects the session coordinator. Resolved once during wiring.
func (c *Controller) SetStarter(s ActivityStarter) { c.starter = s }

// OnStateChanged registers an observer for accepted progress transitions.
// Observers must not mutate orchestration state.
func (c *Controller) OnStateChanged(cb StateChangeFunc) {
	c.stateSubs = append(c.stateSubs, cb)
}

// OnResultReady registers an observer for accepted activity results. The
// placement coordinator subscribes here during wiring.
func (c *Controller) OnResultReady(cb ResultFunc) {
	c.resultSubs = append(c.resultSubs, cb)
}

// Progress returns the current progress state.
func (c *Controller) Progress() Progress { return c.progress }

// PlacedCount returns the number of items the controller has been told
// about via [Controller.ItemPlaced].
func (c *Controller) PlacedCount() int { return c.placedCount }

// Threshold returns the placed-item count required for room completion.
func (c *Controller) Threshold() int { return c.threshold }

// RequestStartActivity asks to begin a session for the given activity type.
//
// Accepted only while the state is [ProgressAwaitingPlacement]; the request
// is then forwarded to the session coordinator, and the state advances to
// [ProgressActivityInProgress] only if the coordinator accepts. Rejected
// requests are logged no-ops; callers must not assume success and should
// use the returned bool for telemetry only.
func (c *Controller) RequestStartActivity(t activity.Type) bool {
	if c.progress != ProgressAwaitingPlacement {
		c.log.Warn("activity start rejected: wrong progress state",
			zap.String("activity", string(t)),
			zap.String("progress", string(c.progress)))
		return false
	}
	if c.starter == nil {
		c.log.Error("activity start rejected: no session coordinator wired",
			zap.String("activity", string(t)))
		return false
	}

	// Forward before transitioning: the coordinator's phase check is the
	// authoritative session guard, and a rejected start must leave the
	// progress state untouched.
	if err := c.starter.StartActivity(t); err != nil {
		c.log.Warn("activity start rejected by session coordinator",
			zap.String("activity", string(t)),
			zap.Error(err))
		return false
	}

	c.transitionTo(ProgressActivityInProgress)
	return true
}

// ResultReady accepts a completed session's result.
//
// Accepted only while the state is [ProgressActivityInProgress]; the state
// advances to [ProgressAwaitingPlacement] before the result is published to
// subscribers, so a subscriber reacting to the result observes the settled
// state.
func (c *Controller) ResultReady(res activity.Result) {
	if res == nil {
		c.log.Warn("activity result dropped: nil result",
			zap.String("progress", string(c.progress)))
		return
	}
	if c.progress != ProgressActivityInProgress {
		c.log.Warn("activity result dropped: wrong progress state",
			zap.String("activity", string(res.ActivityType())),
			zap.String("progress", string(c.progress)))
		return
	}

	c.transitionTo(ProgressAwaitingPlacement)
	for _, cb := range c.resultSubs {
		cb(res)
	}
}

// SessionAborted records that a session ended without producing a result.
//
// Accepted only while the state is [ProgressActivityInProgress]; the state
// returns to [ProgressAwaitingPlacement] without publishing anything, so
// the room keeps accepting clicks after a failed module start.
func (c *Controller) SessionAborted() {
	if c.progress != ProgressActivityInProgress {
		c.log.Warn("session abort ignored: wrong progress state",
			zap.String("progress", string(c.progress)))
		return
	}
	c.transitionTo(ProgressAwaitingPlacement)
}

// ItemPlaced records that the placement coordinator placed an item. Purely
// observational bookkeeping; it does not change the progress state.
func (c *Controller) ItemPlaced() {
	c.placedCount++
	c.log.Debug("item placed", zap.Int("placed_count", c.placedCount))
}

// MarkRoomComplete transitions to the terminal [ProgressRoomComplete]
// state. Guarded against premature firing: rejected unless the placed count
// has reached the threshold, and a no-op if the room is already complete.
func (c *Controller) MarkRoomComplete() {
	if c.placedCount < c.threshold {
		c.log.Warn("room completion rejected: below threshold",
			zap.Int("placed_count", c.placedCount),
			zap.Int("threshold", c.threshold))
		return
	}
	if c.progress == ProgressRoomComplete {
		c.log.Warn("room completion ignored: already complete")
		return
	}

	c.transitionTo(ProgressRoomComplete)
}

// transitionTo is the single mutation point for the progress state. Every
// accepted transition emits an (old, new) notification.
func (c *Controller) transitionTo(next Progress) {
	old := c.progress
	c.progress = next
	c.log.Info("progress state changed",
		zap.String("old", string(old)),
		zap.String("new", string(next)))
	for _, cb := range c.stateSubs {
		cb(old, next)
	}
}
