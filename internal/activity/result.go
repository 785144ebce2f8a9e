package activity

import "time"

// Result is the typed payload a mini-activity module produces on completion.
//
// Result is a closed sum type: the only implementations are
// [LanternResult], [OrigamiResult], and [CalligraphyResult]. Consumers
// switch on [Result.ActivityType] (or the concrete type) rather than
// downcasting through an open hierarchy. Each result is produced once per
// completed session and consumed exactly once by the placement coordinator.
type Result interface {
	// ActivityType returns the activity kind that produced this result.
	ActivityType() Type
	// Prefab returns the descriptor of the decoration prefab to instantiate.
	Prefab() string
	// CompletedAt returns when the activity session finished.
	CompletedAt() time.Time
	// Elapsed returns how long the activity session took.
	Elapsed() time.Duration

	sealed()
}

// ResultMeta carries the fields common to every result variant.
type ResultMeta struct {
	// PrefabID identifies the decoration prefab to instantiate.
	PrefabID string
	// FinishedAt is the completion timestamp.
	FinishedAt time.Time
	// Duration is how long the session took.
	Duration time.Duration
}

// Prefab returns the decoration prefab descriptor.
func (m ResultMeta) Prefab() string { return m.PrefabID }

// CompletedAt returns the completion timestamp.
func (m ResultMeta) CompletedAt() time.Time { return m.FinishedAt }

// Elapsed returns the session duration.
func (m ResultMeta) Elapsed() time.Duration { return m.Duration }

// LanternResult is produced by the lantern activity. Brightness is the
// customization scalar applied to the placed lantern, in [0, 1].
type LanternResult struct {
	ResultMeta
	Brightness float64
}

// ActivityType returns [TypeLantern].
func (LanternResult) ActivityType() Type { return TypeLantern }

func (LanternResult) sealed() {}

// OrigamiResult is produced by the origami activity. Folds is the number of
// folds the player completed, used to pick the placed model's detail level.
type OrigamiResult struct {
	ResultMeta
	Folds int
}

// ActivityType returns [TypeOrigami].
func (OrigamiResult) ActivityType() Type { return TypeOrigami }

func (OrigamiResult) sealed() {}

// CalligraphyResult is produced by the calligraphy activity. StrokeScore is
// the trace-accuracy score in [0, 1], applied as ink weight on the placed
// scroll.
type CalligraphyResult struct {
	ResultMeta
	StrokeScore float64
}

// ActivityType returns [TypeCalligraphy].
func (CalligraphyResult) ActivityType() Type { return TypeCalligraphy }

func (CalligraphyResult) sealed() {}
