package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrConfiguration indicates a malformed run request or system layout.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrValidation indicates an invalid physical parameter such as a non-positive mass.
	ErrValidation = errors.New("dynamo: invalid physical parameter")

	// ErrInvalidState indicates a body state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// ConfigurationError reports the first structural problem found in a run
// request: empty body list, non-positive dt, dimensionality mismatch.
type ConfigurationError struct {
	Field  string
	Body   string
	Index  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("dynamo: configuration: %s of %q: %s", e.Field, e.Body, e.Reason)
	}
	return fmt.Sprintf("dynamo: configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// ValidationError reports an invalid physical parameter of a body.
type ValidationError struct {
	Body   string
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "mass" {
		return fmt.Sprintf("dynamo: validation: %s of %q is %g: %s", e.Field, e.Body, e.Value, e.Reason)
	}
	return fmt.Sprintf("dynamo: validation: %s of %q: %s", e.Field, e.Body, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) body %q: %s", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

func dimReason(got, want int) string {
	return fmt.Sprintf("has %d components, system has %d", got, want)
}
