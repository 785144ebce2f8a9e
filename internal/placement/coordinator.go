package placement

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"kazari/internal/activity"
)

// ProgressGate is the state controller contract the coordinator calls
// through. Spot clicks are forwarded to RequestStartActivity (the
// coordinator does not itself decide acceptance), placements are reported
// via ItemPlaced, and threshold crossings via MarkRoomComplete.
type ProgressGate interface {
	RequestStartActivity(t activity.Type) bool
	ItemPlaced()
	MarkRoomComplete()
}

// PlacedFunc observes item placements, for UI/audio reaction. Observers
// must not mutate orchestration state.
type PlacedFunc func(spot *Spot, item Item)

// CompleteFunc observes the room-complete notification with the final
// placed count.
type CompleteFunc func(placed int)

// Coordinator owns the ordered spot collection and the placed-item tally.
//
// Create with [NewCoordinator], connect the state controller with
// [Coordinator.SetGate], and subscribe it to the controller's result-ready
// notification by wiring [Coordinator.HandleResultReady] during setup.
type Coordinator struct {
	spots   []*Spot
	byID    map[string]*Spot
	factory Factory

	threshold     int
	placed        int
	triggered     *Spot
	completeFired bool

	gate         ProgressGate
	placedSubs   []PlacedFunc
	completeSubs []CompleteFunc

	log *zap.Logger
}

// NewCoordinator validates the spot collection and creates a coordinator.
//
// Fails fast on configuration errors: no spots, duplicate spot IDs, a spot
// with an unknown activity type, a nil factory, or a non-positive
// threshold.
func NewCoordinator(spots []*Spot, factory Factory, threshold int, log *zap.Logger) (*Coordinator, error) {
	if len(spots) == 0 {
		return nil, errors.New("placement: at least one spot is required")
	}
	if factory == nil {
		return nil, errors.New("placement: item factory is required")
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("placement: threshold must be positive, got %d", threshold)
	}
	if threshold > len(spots) {
		return nil, fmt.Errorf("placement: threshold %d exceeds spot count %d", threshold, len(spots))
	}

	byID := make(map[string]*Spot, len(spots))
	for _, s := range spots {
		if !s.ActivityType().IsValid() {
			return nil, fmt.Errorf("placement: spot %q has unknown activity type %q", s.ID(), s.ActivityType())
		}
		if _, dup := byID[s.ID()]; dup {
			return nil, fmt.Errorf("placement: duplicate spot id %q", s.ID())
		}
		byID[s.ID()] = s
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		spots:     spots,
		byID:      byID,
		factory:   factory,
		threshold: threshold,
		log:       log,
	}, nil
}

// SetGate connects the state controller. Resolved once during wiring.
func (c *Coordinator) SetGate(g ProgressGate) { c.gate = g }

// OnItemPlaced registers an observer for placements.
func (c *Coordinator) OnItemPlaced(cb PlacedFunc) {
	c.placedSubs = append(c.placedSubs, cb)
}

// OnRoomComplete registers an observer for the completion notification.
func (c *Coordinator) OnRoomComplete(cb CompleteFunc) {
	c.completeSubs = append(c.completeSubs, cb)
}

// Spots returns the ordered spot collection.
func (c *Coordinator) Spots() []*Spot { return c.spots }

// Spot returns the spot with the given ID, or nil.
func (c *Coordinator) Spot(id string) *Spot { return c.byID[id] }

// PlacedCount returns the running placed-item tally.
func (c *Coordinator) PlacedCount() int { return c.placed }

// Threshold returns the placed count required for room completion.
func (c *Coordinator) Threshold() int { return c.threshold }

// HandleSpotClicked forwards a spot click to the state controller.
//
// Clicking an occupied or unknown spot is a no-op. Otherwise the spot is
// remembered as the currently triggered spot and the request is forwarded;
// acceptance is the controller's decision, and on rejection the remembered
// spot is cleared again.
func (c *Coordinator) HandleSpotClicked(id string) {
	spot, ok := c.byID[id]
	if !ok {
		c.log.Warn("click ignored: unknown spot", zap.String("spot", id))
		return
	}
	if spot.Occupied() {
		c.log.Debug("click ignored: spot occupied", zap.String("spot", id))
		return
	}
	if c.gate == nil {
		c.log.Error("click dropped: no state controller wired", zap.String("spot", id))
		return
	}

	c.triggered = spot
	if !c.gate.RequestStartActivity(spot.ActivityType()) {
		c.triggered = nil
	}
}

// HandleResultReady places a decoration for a completed activity session.
// Subscribed to the state controller's result-ready notification during
// wiring.
//
// The item is instantiated at the triggered spot's anchor pose (falling
// back to the spot's own pose), customized if it supports it, and the spot
// is marked occupied. The controller is notified via ItemPlaced, and
// MarkRoomComplete fires exactly once when the tally reaches the threshold.
func (c *Coordinator) HandleResultReady(res activity.Result) {
	spot := c.triggered
	if spot == nil {
		c.log.Error("result dropped: no triggered spot remembered",
			zap.String("activity", string(res.ActivityType())))
		return
	}
	c.triggered = nil

	item, err := c.factory.Instantiate(res.Prefab(), spot.PlacementPose())
	if err != nil {
		c.log.Error("item instantiation failed",
			zap.String("spot", spot.ID()),
			zap.String("prefab", res.Prefab()),
			zap.Error(err))
		return
	}

	// Capability check, not mandatory: items without the customization
	// capability are placed as-is.
	if cust, ok := item.(Customizable); ok {
		cust.ApplyCustomization(res)
	}

	spot.occupy(item)
	c.placed++
	c.log.Info("item placed",
		zap.String("spot", spot.ID()),
		zap.String("activity", string(res.ActivityType())),
		zap.String("item", item.ID()),
		zap.Int("placed_count", c.placed))

	for _, cb := range c.placedSubs {
		cb(spot, item)
	}
	if c.gate != nil {
		c.gate.ItemPlaced()
	}

	if c.placed >= c.threshold && !c.completeFired {
		c.completeFired = true
		for _, cb := range c.completeSubs {
			cb(c.placed)
		}
		if c.gate != nil {
			c.gate.MarkRoomComplete()
		}
	}
}

// ClearSpot destroys the placed item reference and resets occupancy.
//
// Intended for test/reset flows only: it deliberately does not reconcile
// the placed-count tally, so callers resetting state must reset the tally
// too.
func (c *Coordinator) ClearSpot(id string) error {
	spot, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("placement: unknown spot %q", id)
	}
	spot.clear()
	return nil
}
