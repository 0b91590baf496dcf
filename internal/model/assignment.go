// Package model defines domain entities for the application.
package model

import "time"

// UsageStatus represents the computed activity state of a borrower.
type UsageStatus string

const (
	UsageActive   UsageStatus = "Active"
	UsageInactive UsageStatus = "Inactive"
)

// InactivityWindowDays is the number of days without use after which a
// borrower counts as inactive.
const InactivityWindowDays = 30

// Assignment is the ledger entry recording that a user borrows a tool.
// At most one assignment exists per (tool, user) pair.
type Assignment struct {
	ID         string     `json:"id"`
	ToolID     string     `json:"tool_id"`
	UserID     string     `json:"user_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`

	// UserEmail is populated on reads that join the borrower record.
	UserEmail string `json:"-"`
}

// UsageStatus computes the activity status of this assignment as of today.
// A borrower is active when the last recorded use falls within the
// inactivity window, inclusive of today.
func (a *Assignment) UsageStatus(today time.Time) UsageStatus {
	if a.LastUsedAt == nil {
		return UsageInactive
	}
	threshold := DateOf(today).AddDate(0, 0, -InactivityWindowDays)
	if DateOf(*a.LastUsedAt).Before(threshold) {
		return UsageInactive
	}
	return UsageActive
}

// DateOf truncates a timestamp to its UTC calendar date.
// Usage is tracked at date granularity while assignment timestamps keep
// full precision.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
