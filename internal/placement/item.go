package placement

import (
	"github.com/google/uuid"

	"kazari/internal/activity"
	"kazari/internal/geom"
)

// Item is an instantiated decoration placed at a spot.
type Item interface {
	// ID returns the item's unique instance identifier.
	ID() string
	// Prefab returns the prefab descriptor the item was instantiated from.
	Prefab() string
	// Pose returns where the item was placed.
	Pose() geom.Pose
}

// Customizable is the optional capability an item may expose for applying
// an activity result's customization payload. The coordinator checks for it
// with a type assertion; items without it are placed as-is.
type Customizable interface {
	ApplyCustomization(res activity.Result)
}

// Factory instantiates decoration items from prefab descriptors. The real
// game's asset system implements this; [NewDecorFactory] provides the
// default in-memory implementation.
type Factory interface {
	Instantiate(prefab string, at geom.Pose) (Item, error)
}

// Decor is the default in-memory decoration item. It records the result it
// was customized with, which is all the headless simulation and tests need.
type Decor struct {
	id     string
	prefab string
	pose   geom.Pose
	result activity.Result
}

// ID returns the item's generated instance identifier.
func (d *Decor) ID() string { return d.id }

// Prefab returns the prefab descriptor.
func (d *Decor) Prefab() string { return d.prefab }

// Pose returns the placement pose.
func (d *Decor) Pose() geom.Pose { return d.pose }

// ApplyCustomization stores the result payload on the item.
func (d *Decor) ApplyCustomization(res activity.Result) { d.result = res }

// Customization returns the result applied to this item, or nil.
func (d *Decor) Customization() activity.Result { return d.result }

type decorFactory struct{}

// NewDecorFactory returns a [Factory] producing [Decor] items with
// generated UUID instance IDs.
func NewDecorFactory() Factory { return decorFactory{} }

func (decorFactory) Instantiate(prefab string, at geom.Pose) (Item, error) {
	return &Decor{
		id:     uuid.NewString(),
		prefab: prefab,
		pose:   at,
	}, nil
}
