package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMass indicates a center of mass request on bodies with zero total mass.
	ErrNoMass = errors.New("sim: total mass is zero")

	// ErrPaused indicates a run was requested on a paused simulation.
	ErrPaused = errors.New("sim: simulation is paused")

	// ErrUnstable indicates a body state became NaN or Inf.
	ErrUnstable = errors.New("sim: body state diverged (NaN or Inf)")

	// ErrInvalidConfig indicates a run configuration outside valid bounds.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrUnknownOrdering indicates an unrecognised update ordering name.
	ErrUnknownOrdering = errors.New("sim: unknown ordering")
)

// SimError wraps an error with the step and body it was detected at.
type SimError struct {
	Step    int
	Time    float64
	BodyID  int
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) body %d: %v", e.Step, e.Time, e.BodyID, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
