// Package physics implements the single-host gravity model and the orbital
// mechanics helpers built on it.
//
//   - [Gravity]: a = -G*M*r/|r|^3 with a floor for zero separation
//   - [CircularSpeed], [PeriapsisSpeed], [OrbitalInsert]: initial conditions
//   - [SpecificEnergy], [SpecificAngularMomentum]: conserved quantities
//
// Only the host attracts. Bodies in the same system never see each other,
// which is what lets the driver step them independently:
//
//	g := physics.NewGravity()
//	acc := make(dynamo.Vector, 2)
//	g.Acceleration(acc, sys.Host, sys.Bodies[0].Position)
package physics
