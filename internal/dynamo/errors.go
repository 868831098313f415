package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDimensionMismatch indicates a state vector whose length differs from
	// the dimension a stepper or system was built for.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and stepper")

	// ErrInvalidDimension indicates a non-positive state dimension.
	ErrInvalidDimension = errors.New("dynamo: state dimension must be positive")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("dynamo: invalid simulation config")

	// ErrParameterBounds indicates an unknown or out of range model parameter.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	ErrUnknownModel      = errors.New("dynamo: unknown model")
	ErrUnknownStepper    = errors.New("dynamo: unknown stepper")
	ErrUnknownController = errors.New("dynamo: unknown controller")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
