// Package metrics provides dynamo.Metric implementations that summarize
// how well a run preserved orbital invariants.
package metrics
