// Package state provides the global progress state machine for a room.
//
// The [Controller] owns the three-state progress value and gates every
// request between the placement coordinator and the session coordinator.
// All transitions go through a single guarded transition function; rejected
// requests are logged no-ops, never errors that propagate to callers.
//
// Key types:
//   - [Progress] - the three-state progress value
//   - [Controller] - guarded transition owner and notification source
//   - [ActivityStarter] - the session coordinator's start contract
package state

// Progress describes the room's global progress state. Exactly one value is
// live at a time, owned by the [Controller] and mutated only through its
// guarded transition function.
type Progress string

const (
	// ProgressAwaitingPlacement indicates no activity session is in flight
	// and spots accept clicks. This is the initial state.
	ProgressAwaitingPlacement Progress = "awaiting-placement"
	// ProgressActivityInProgress indicates a mini-activity session is
	// running (the session coordinator's phase is anything but idle).
	ProgressActivityInProgress Progress = "activity-in-progress"
	// ProgressRoomComplete indicates the placed-item threshold has been
	// reached. Terminal: no further activity starts are accepted.
	ProgressRoomComplete Progress = "room-complete"
)

// IsValid reports whether p is one of the known progress states.
func (p Progress) IsValid() bool {
	switch p {
	case ProgressAwaitingPlacement, ProgressActivityInProgress, ProgressRoomComplete:
		return true
	}
	return false
}
