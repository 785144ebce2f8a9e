package placement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazari/internal/activity"
	"kazari/internal/geom"
)

// fakeGate records controller calls and answers start requests with a
// scripted verdict.
type fakeGate struct {
	accept        bool
	startCalls    []activity.Type
	placedCalls   int
	completeCalls int
}

func (g *fakeGate) RequestStartActivity(t activity.Type) bool {
	g.startCalls = append(g.startCalls, t)
	return g.accept
}

func (g *fakeGate) ItemPlaced()       { g.placedCalls++ }
func (g *fakeGate) MarkRoomComplete() { g.completeCalls++ }

type failFactory struct{}

func (failFactory) Instantiate(prefab string, at geom.Pose) (Item, error) {
	return nil, errors.New("asset bundle missing")
}

func testSpots() []*Spot {
	anchor := geom.Pose{Position: geom.Vec3{X: 1, Y: 2, Z: 3}}
	return []*Spot{
		NewSpot("alcove", activity.TypeLantern, geom.Pose{Position: geom.Vec3{X: 1}}, &anchor),
		NewSpot("table", activity.TypeOrigami, geom.Pose{Position: geom.Vec3{X: 2}}, nil),
		NewSpot("desk", activity.TypeCalligraphy, geom.Pose{Position: geom.Vec3{X: 3}}, nil),
	}
}

func newTestCoordinator(t *testing.T, threshold int) (*Coordinator, *fakeGate) {
	t.Helper()
	c, err := NewCoordinator(testSpots(), NewDecorFactory(), threshold, nil)
	require.NoError(t, err)

	gate := &fakeGate{accept: true}
	c.SetGate(gate)
	return c, gate
}

func lanternResult() activity.Result {
	return activity.LanternResult{
		ResultMeta: activity.ResultMeta{PrefabID: "decor/lantern"},
		Brightness: 0.6,
	}
}

func TestNewCoordinatorValidation(t *testing.T) {
	factory := NewDecorFactory()

	tests := []struct {
		name      string
		spots     []*Spot
		factory   Factory
		threshold int
	}{
		{name: "no spots", spots: nil, factory: factory, threshold: 1},
		{name: "nil factory", spots: testSpots(), factory: nil, threshold: 1},
		{name: "zero threshold", spots: testSpots(), factory: factory, threshold: 0},
		{name: "threshold above spot count", spots: testSpots(), factory: factory, threshold: 4},
		{
			name: "duplicate spot id",
			spots: []*Spot{
				NewSpot("dup", activity.TypeLantern, geom.Pose{}, nil),
				NewSpot("dup", activity.TypeOrigami, geom.Pose{}, nil),
			},
			factory:   factory,
			threshold: 1,
		},
		{
			name:      "unknown activity type",
			spots:     []*Spot{NewSpot("x", "pottery", geom.Pose{}, nil)},
			factory:   factory,
			threshold: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoordinator(tt.spots, tt.factory, tt.threshold, nil)
			assert.Error(t, err)
		})
	}
}

func TestHandleSpotClickedForwardsToGate(t *testing.T) {
	c, gate := newTestCoordinator(t, 3)

	c.HandleSpotClicked("alcove")

	require.Equal(t, []activity.Type{activity.TypeLantern}, gate.startCalls)
}

func TestHandleSpotClickedUnknownSpot(t *testing.T) {
	c, gate := newTestCoordinator(t, 3)

	c.HandleSpotClicked("nowhere")

	assert.Empty(t, gate.startCalls)
}

func TestHandleSpotClickedOccupiedSpot(t *testing.T) {
	c, gate := newTestCoordinator(t, 3)

	c.HandleSpotClicked("alcove")
	c.HandleResultReady(lanternResult())
	require.True(t, c.Spot("alcove").Occupied())

	gate.startCalls = nil
	c.HandleSpotClicked("alcove")

	assert.Empty(t, gate.startCalls, "occupied spot click must not reach the controller")
}

func TestRejectedClickClearsTriggeredSpot(t *testing.T) {
	c, gate := newTestCoordinator(t, 3)
	gate.accept = false

	c.HandleSpotClicked("alcove")
	c.HandleResultReady(lanternResult())

	assert.False(t, c.Spot("alcove").Occupied(), "rejected click must not leave a triggered spot behind")
	assert.Zero(t, c.PlacedCount())
}

func TestHandleResultReadyPlacesAtAnchor(t *testing.T) {
	c, gate := newTestCoordinator(t, 3)

	var placedSpot *Spot
	var placedItem Item
	c.OnItemPlaced(func(s *Spot, i Item) {
		placedSpot = s
		placedItem = i
	})

	c.HandleSpotClicked("alcove")
	c.HandleResultReady(lanternResult())

	require.NotNil(t, placedItem)
	assert.Equal(t, "alcove", placedSpot.ID())
	assert.Equal(t, "decor/lantern", placedItem.Prefab())
	assert.Equal(t, geom.Vec3{X: 1, Y: 2, Z: 3}, placedItem.Pose().Position, "item must sit at the anchor pose")
	assert.True(t, c.Spot("alcove").Occupied())
	assert.Same(t, placedItem, c.Spot("alcove").Item())
	assert.Equal(t, 1, c.PlacedCount())
	assert.Equal(t, 1, gate.placedCalls)
}

func TestHandleResultReadyFallsBackToSpotPose(t *testing.T) {
	c, _ := newTestCoordinator(t, 3)

	var placedItem Item
	c.OnItemPlaced(func(s *Spot, i Item) { placedItem = i })

	c.HandleSpotClicked("table")
	c.HandleResultReady(activity.OrigamiResult{
		ResultMeta: activity.ResultMeta{PrefabID: "decor/crane"},
		Folds:      7,
	})

	require.NotNil(t, placedItem)
	assert.Equal(t, geom.Vec3{X: 2}, placedItem.Pose().Position)
}

func TestHandleResultReadyAppliesCustomization(t *testing.T) {
	c, _ := newTestCoordinator(t, 3)

	c.HandleSpotClicked("alcove")
	res := lanternResult()
	c.HandleResultReady(res)

	decor, ok := c.Spot("alcove").Item().(*Decor)
	require.True(t, ok)
	assert.Equal(t, res, decor.Customization())
}

func TestHandleResultReadyWithoutTriggeredSpot(t *testing.T) {
	c, gate := newTestCoordinator(t, 3)

	c.HandleResultReady(lanternResult())

	assert.Zero(t, c.PlacedCount())
	assert.Zero(t, gate.placedCalls)
}

func TestFactoryFailureLeavesSpotOpen(t *testing.T) {
	c, err := NewCoordinator(testSpots(), failFactory{}, 3, nil)
	require.NoError(t, err)
	gate := &fakeGate{accept: true}
	c.SetGate(gate)

	c.HandleSpotClicked("alcove")
	c.HandleResultReady(lanternResult())

	assert.False(t, c.Spot("alcove").Occupied())
	assert.Zero(t, c.PlacedCount())
	assert.Zero(t, gate.placedCalls)
}

func TestCompletionFiresOnceAtThreshold(t *testing.T) {
	c, gate := newTestCoordinator(t, 2)

	var completions []int
	c.OnRoomComplete(func(placed int) { completions = append(completions, placed) })

	place := func(id string, res activity.Result) {
		c.HandleSpotClicked(id)
		c.HandleResultReady(res)
	}

	place("alcove", lanternResult())
	assert.Empty(t, completions, "completion fired below threshold")
	assert.Zero(t, gate.completeCalls)

	place("table", activity.OrigamiResult{ResultMeta: activity.ResultMeta{PrefabID: "decor/crane"}})
	require.Equal(t, []int{2}, completions)
	assert.Equal(t, 1, gate.completeCalls)

	// A third placement past the threshold must not re-fire.
	place("desk", activity.CalligraphyResult{ResultMeta: activity.ResultMeta{PrefabID: "decor/scroll"}})
	assert.Equal(t, []int{2}, completions)
	assert.Equal(t, 1, gate.completeCalls)
	assert.Equal(t, 3, c.PlacedCount())
	assert.Equal(t, 3, gate.placedCalls)
}

func TestClearSpot(t *testing.T) {
	c, _ := newTestCoordinator(t, 3)

	c.HandleSpotClicked("alcove")
	c.HandleResultReady(lanternResult())
	require.True(t, c.Spot("alcove").Occupied())

	require.NoError(t, c.ClearSpot("alcove"))
	assert.False(t, c.Spot("alcove").Occupied())
	assert.Nil(t, c.Spot("alcove").Item())
	assert.Equal(t, 1, c.PlacedCount(), "clearing does not reconcile the tally")

	assert.Error(t, c.ClearSpot("nowhere"))
}
