// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()

	// Tool management metrics
	IncToolCreated()
	IncToolUpdated()
	IncToolDeleted()

	// Assignment ledger metrics
	IncAssignmentCreated()
	IncUsageRecorded()

	// Reporting metrics
	IncReportServed(kind string) // kind: "tool_usage" or "inactive_borrowers"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
