package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered    uint64
	ToolsCreated       uint64
	ToolsUpdated       uint64
	ToolsDeleted       uint64
	AssignmentsCreated uint64
	UsageRecorded      uint64
	ToolUsageReports   uint64
	InactiveReports    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered    uint64
	toolsCreated       uint64
	toolsUpdated       uint64
	toolsDeleted       uint64
	assignmentsCreated uint64
	usageRecorded      uint64
	toolUsageReports   uint64
	inactiveReports    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:    atomic.LoadUint64(&m.usersRegistered),
		ToolsCreated:       atomic.LoadUint64(&m.toolsCreated),
		ToolsUpdated:       atomic.LoadUint64(&m.toolsUpdated),
		ToolsDeleted:       atomic.LoadUint64(&m.toolsDeleted),
		AssignmentsCreated: atomic.LoadUint64(&m.assignmentsCreated),
		UsageRecorded:      atomic.LoadUint64(&m.usageRecorded),
		ToolUsageReports:   atomic.LoadUint64(&m.toolUsageReports),
		InactiveReports:    atomic.LoadUint64(&m.inactiveReports),
	}
}

// IncUserRegistered increments the registered-users counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncToolCreated increments the tool created counter.
func (m *InMemoryRecorder) IncToolCreated() {
	atomic.AddUint64(&m.toolsCreated, 1)
}

// IncToolUpdated increments the tool updated counter.
func (m *InMemoryRecorder) IncToolUpdated() {
	atomic.AddUint64(&m.toolsUpdated, 1)
}

// IncToolDeleted increments the tool deleted counter.
func (m *InMemoryRecorder) IncToolDeleted() {
	atomic.AddUint64(&m.toolsDeleted, 1)
}

// IncAssignmentCreated increments the assignment counter.
func (m *InMemoryRecorder) IncAssignmentCreated() {
	atomic.AddUint64(&m.assignmentsCreated, 1)
}

// IncUsageRecorded increments the usage-mark counter.
func (m *InMemoryRecorder) IncUsageRecorded() {
	atomic.AddUint64(&m.usageRecorded, 1)
}

// IncReportServed increments the counter for the given report kind.
func (m *InMemoryRecorder) IncReportServed(kind string) {
	switch kind {
	case "tool_usage":
		atomic.AddUint64(&m.toolUsageReports, 1)
	case "inactive_borrowers":
		atomic.AddUint64(&m.inactiveReports, 1)
	}
}
