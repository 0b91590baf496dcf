package service

import (
	"testing"
	"time"

	"github.com/toolkeep/toolkeep/internal/model"
)

var reportNow = time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := reportNow.AddDate(0, 0, -n)
	return &t
}

func TestBuildUsageRows_StatusBoundaries(t *testing.T) {
	t.Parallel()

	assignments := []*model.Assignment{
		{UserID: "u1", UserEmail: "fresh@example.com", AssignedAt: *daysAgo(60), LastUsedAt: daysAgo(29)},
		{UserID: "u2", UserEmail: "edge@example.com", AssignedAt: *daysAgo(60), LastUsedAt: daysAgo(30)},
		{UserID: "u3", UserEmail: "stale@example.com", AssignedAt: *daysAgo(60), LastUsedAt: daysAgo(31)},
		{UserID: "u4", UserEmail: "never@example.com", AssignedAt: *daysAgo(60)},
	}

	rows := buildUsageRows(assignments, reportNow)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	want := []model.UsageStatus{
		model.UsageActive,
		model.UsageActive,
		model.UsageInactive,
		model.UsageInactive,
	}
	for i, row := range rows {
		if row.Status != want[i] {
			t.Errorf("row %d (%s): status = %s, want %s", i, row.Email, row.Status, want[i])
		}
	}

	if rows[3].LastUsed != nil {
		t.Error("never-used row should have nil LastUsed")
	}
	if rows[0].LastUsed == nil || !rows[0].LastUsed.Equal(model.DateOf(*daysAgo(29))) {
		t.Errorf("LastUsed should be truncated to date, got %v", rows[0].LastUsed)
	}
}

func TestBuildUsageRows_PreservesLedgerOrder(t *testing.T) {
	t.Parallel()

	assignments := []*model.Assignment{
		{UserID: "u2", UserEmail: "second@example.com", AssignedAt: *daysAgo(10)},
		{UserID: "u1", UserEmail: "first@example.com", AssignedAt: *daysAgo(5)},
	}

	rows := buildUsageRows(assignments, reportNow)

	if rows[0].Email != "second@example.com" || rows[1].Email != "first@example.com" {
		t.Errorf("rows should keep ledger order, got %q then %q", rows[0].Email, rows[1].Email)
	}
}

func TestCollectInactiveBorrowers_RecentUseExcludes(t *testing.T) {
	t.Parallel()

	// Same borrower on two tools; one use 40 days ago, one 10 days ago.
	// The most recent use wins, so the borrower is active.
	assignments := []*model.Assignment{
		{ToolID: "t1", UserID: "u1", UserEmail: "u1@example.com", LastUsedAt: daysAgo(40)},
		{ToolID: "t2", UserID: "u1", UserEmail: "u1@example.com", LastUsedAt: daysAgo(10)},
	}

	inactive := collectInactiveBorrowers(assignments, reportNow)
	if len(inactive) != 0 {
		t.Errorf("expected no inactive borrowers, got %v", inactive)
	}
}

func TestCollectInactiveBorrowers_StaleAcrossToolsDeduplicated(t *testing.T) {
	t.Parallel()

	assignments := []*model.Assignment{
		{ToolID: "t1", UserID: "u1", UserEmail: "u1@example.com", LastUsedAt: daysAgo(40)},
		{ToolID: "t2", UserID: "u1", UserEmail: "u1@example.com", LastUsedAt: daysAgo(45)},
	}

	inactive := collectInactiveBorrowers(assignments, reportNow)
	if len(inactive) != 1 {
		t.Fatalf("expected exactly one inactive borrower, got %d", len(inactive))
	}
	if inactive[0].UserID != "u1" {
		t.Errorf("unexpected borrower: %+v", inactive[0])
	}
}

func TestCollectInactiveBorrowers_NeverUsedIncluded(t *testing.T) {
	t.Parallel()

	assignments := []*model.Assignment{
		{ToolID: "t1", UserID: "u1", UserEmail: "u1@example.com"},
		{ToolID: "t2", UserID: "u1", UserEmail: "u1@example.com"},
	}

	inactive := collectInactiveBorrowers(assignments, reportNow)
	if len(inactive) != 1 {
		t.Fatalf("expected one inactive borrower, got %d", len(inactive))
	}
}

func TestCollectInactiveBorrowers_ExactBoundaryIsActive(t *testing.T) {
	t.Parallel()

	// Exactly 30 days ago is not strictly older than the threshold.
	assignments := []*model.Assignment{
		{ToolID: "t1", UserID: "u1", UserEmail: "u1@example.com", LastUsedAt: daysAgo(30)},
	}

	inactive := collectInactiveBorrowers(assignments, reportNow)
	if len(inactive) != 0 {
		t.Errorf("boundary-day borrower should be active, got %v", inactive)
	}
}

func TestCollectInactiveBorrowers_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	assignments := []*model.Assignment{
		{ToolID: "t1", UserID: "u2", UserEmail: "u2@example.com", LastUsedAt: daysAgo(50)},
		{ToolID: "t1", UserID: "u1", UserEmail: "u1@example.com"},
		{ToolID: "t2", UserID: "u2", UserEmail: "u2@example.com", LastUsedAt: daysAgo(55)},
	}

	inactive := collectInactiveBorrowers(assignments, reportNow)
	if len(inactive) != 2 {
		t.Fatalf("expected two inactive borrowers, got %d", len(inactive))
	}
	if inactive[0].UserID != "u2" || inactive[1].UserID != "u1" {
		t.Errorf("expected first-seen order [u2 u1], got [%s %s]", inactive[0].UserID, inactive[1].UserID)
	}
}

func TestCollectInactiveBorrowers_NullAndStaleMixed(t *testing.T) {
	t.Parallel()

	// A null use on one tool must not mask a recent use on another.
	assignments := []*model.Assignment{
		{ToolID: "t1", UserID: "u1", UserEmail: "u1@example.com"},
		{ToolID: "t2", UserID: "u1", UserEmail: "u1@example.com", LastUsedAt: daysAgo(3)},
	}

	inactive := collectInactiveBorrowers(assignments, reportNow)
	if len(inactive) != 0 {
		t.Errorf("borrower with a recent use should be active, got %v", inactive)
	}
}

func TestCollectInactiveBorrowers_Empty(t *testing.T) {
	t.Parallel()

	inactive := collectInactiveBorrowers(nil, reportNow)
	if len(inactive) != 0 {
		t.Errorf("expected empty result, got %v", inactive)
	}
}
