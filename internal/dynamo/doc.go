// Package dynamo provides the core data model for host-centred gravity
// simulation.
//
//   - [Body]: a point mass with position and velocity
//   - [System]: one host plus the bodies orbiting it
//   - [ForceModel]: acceleration of a body given the host
//   - [Integrator]: advances one body by one step
//   - [Metric], [Observer]: hooks the driver calls after every step
//
// Errors are typed: [ConfigurationError] for malformed requests and
// [ValidationError] for invalid physical parameters. Both unwrap to a
// sentinel, so callers test them with errors.Is:
//
//	if err := sys.Validate(); errors.Is(err, dynamo.ErrConfiguration) {
//	    // fix the request
//	}
//
// # Thread Safety
//
// A System is not safe for concurrent mutation. Distinct bodies never read
// each other's state, so stepping different bodies from different
// goroutines is safe as long as the host is left alone.
package dynamo
