package activity

// CompletionFunc receives a module's typed result. A module calls it exactly
// once per activation, after which the module should be considered finished
// (though its visuals stay up until Stop releases them).
type CompletionFunc func(Result)

// Module is the capability contract for a mini-activity.
//
// The lifecycle coordinator activates a module only after the camera has
// arrived at the activity's pose, and stops it after the success hold
// completes. Implementations live outside the orchestration core (the real
// game's input mechanics, or the scripted modules in the sim package).
type Module interface {
	// Start begins an activity session. The module reports its result
	// through onComplete exactly once. Start is called at most once per
	// activation; returning an error aborts the session without a result.
	Start(onComplete CompletionFunc) error

	// Stop aborts or cleans up the activity and releases its resources.
	// Safe to call even if the module was never started.
	Stop()
}
