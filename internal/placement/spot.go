// Package placement provides placement spots and the placement coordinator.
//
// A spot is a fixed scene location bound to exactly one activity type. The
// coordinator owns the spot collection, reacts to result-ready
// notifications by instantiating and customizing decoration items, tracks
// the placed-item tally, and raises room completion at the configured
// threshold.
//
// Key types:
//   - [Spot] - scene location with occupancy and optional anchor pose
//   - [Coordinator] - spot owner, item placer, completion threshold
//   - [Factory] / [Item] / [Customizable] - decoration instantiation contracts
package placement

import (
	"kazari/internal/activity"
	"kazari/internal/geom"
)

// Spot is a fixed scene location bound to one activity type.
//
// Spots are created at scene setup and never destroyed during a session.
// Occupancy is mutated only by the [Coordinator]: a spot goes
// unoccupied→occupied exactly once per session, and re-placement requires
// an explicit clear.
type Spot struct {
	id       string
	activity activity.Type
	pose     geom.Pose
	anchor   *geom.Pose

	occupied bool
	item     Item
}

// NewSpot creates an unoccupied spot. The anchor is an optional precise
// placement pose; pass nil to place items at the spot's own pose.
func NewSpot(id string, t activity.Type, pose geom.Pose, anchor *geom.Pose) *Spot {
	return &Spot{
		id:       id,
		activity: t,
		pose:     pose,
		anchor:   anchor,
	}
}

// ID returns the spot's stable identifier.
func (s *Spot) ID() string { return s.id }

// ActivityType returns the activity this spot triggers. Immutable.
func (s *Spot) ActivityType() activity.Type { return s.activity }

// Pose returns the spot's own scene pose.
func (s *Spot) Pose() geom.Pose { return s.pose }

// Occupied reports whether an item is placed at this spot.
func (s *Spot) Occupied() bool { return s.occupied }

// Item returns the placed item, or nil when unoccupied.
func (s *Spot) Item() Item { return s.item }

// PlacementPose returns the precise anchor pose if configured, falling
// back to the spot's own pose.
func (s *Spot) PlacementPose() geom.Pose {
	if s.anchor != nil {
		return *s.anchor
	}
	return s.pose
}

func (s *Spot) occupy(item Item) {
	s.occupied = true
	s.item = item
}

func (s *Spot) clear() {
	s.occupied = false
	s.item = nil
}
