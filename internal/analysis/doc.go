// Package analysis derives orbital diagnostics from simulated trajectories.
//
//   - [SweptAreas]: area swept by the host-body radius over equal time slices
//   - [SecondLaw]: Kepler's second law report over those areas
//   - [ElementsOf]: osculating two-body elements of a body relative to its host
//
// # Equal areas
//
// The fan between consecutive samples is approximated by the triangle
// host, p[i], p[i+1]. Summing triangles over slices of equal duration gives
// areas whose coefficient of variation measures how well the integrator
// preserves areal velocity:
//
//	areas, _ := analysis.SweptAreas(host.Position, tr.Path(0), 10)
//	report := analysis.SecondLaw(areas, analysis.DefaultCVThreshold)
package analysis
