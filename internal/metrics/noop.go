package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncToolCreated is a no-op.
func (n *NoopRecorder) IncToolCreated() {}

// IncToolUpdated is a no-op.
func (n *NoopRecorder) IncToolUpdated() {}

// IncToolDeleted is a no-op.
func (n *NoopRecorder) IncToolDeleted() {}

// IncAssignmentCreated is a no-op.
func (n *NoopRecorder) IncAssignmentCreated() {}

// IncUsageRecorded is a no-op.
func (n *NoopRecorder) IncUsageRecorded() {}

// IncReportServed is a no-op.
func (n *NoopRecorder) IncReportServed(kind string) {}
