package cli

import (
	"errors"
	"fmt"
)

// ExitError carries the exit code a command wants to hand back to the
// shell. RunE functions return it instead of calling os.Exit, so command
// behavior stays testable; [RunWithConfig] unwraps it into the
// [ExecuteResult], and only [Execute] terminates the process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError extracts the exit code from err, unwrapping as needed.
// Returns (0, false) when no [ExitError] is in the chain.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
