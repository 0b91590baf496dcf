package service

import (
	"context"
	"time"

	"github.com/toolkeep/toolkeep/internal/metrics"
	"github.com/toolkeep/toolkeep/internal/model"
	"github.com/toolkeep/toolkeep/internal/repository"
)

// ReportService derives activity views from the assignment ledger.
// Reports are computed per request from the ledger's current contents;
// nothing here is cached or persisted.
type ReportService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
	now     func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(repo *repository.Repository, recorder metrics.Recorder) *ReportService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ReportService{
		repo:    repo,
		metrics: recorder,
		now:     time.Now,
	}
}

// UsageRow is one borrower's usage summary for a single tool.
type UsageRow struct {
	Email        string
	AssignedDate time.Time
	LastUsed     *time.Time
	Status       model.UsageStatus
}

// Borrower identifies a user appearing in the cross-tool inactivity report.
type Borrower struct {
	UserID string
	Email  string
}

// ToolUsageReport returns the per-borrower usage status for a tool the
// caller owns, in ledger insertion order.
func (s *ReportService) ToolUsageReport(ctx context.Context, toolID, callerID string) ([]UsageRow, error) {
	if _, err := requireOwnedTool(ctx, s.repo, toolID, callerID); err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignmentsByTool(ctx, toolID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncReportServed("tool_usage")

	return buildUsageRows(assignments, s.now()), nil
}

// InactiveBorrowers returns every distinct borrower across all of the
// caller's tools whose most recent use is absent or older than the
// inactivity window.
func (s *ReportService) InactiveBorrowers(ctx context.Context, ownerID string) ([]Borrower, error) {
	assignments, err := s.repo.ListAssignmentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncReportServed("inactive_borrowers")

	return collectInactiveBorrowers(assignments, s.now()), nil
}

// buildUsageRows computes a usage row per assignment as of the given time.
func buildUsageRows(assignments []*model.Assignment, now time.Time) []UsageRow {
	rows := make([]UsageRow, 0, len(assignments))
	for _, a := range assignments {
		var lastUsed *time.Time
		if a.LastUsedAt != nil {
			d := model.DateOf(*a.LastUsedAt)
			lastUsed = &d
		}

		rows = append(rows, UsageRow{
			Email:        a.UserEmail,
			AssignedDate: model.DateOf(a.AssignedAt),
			LastUsed:     lastUsed,
			Status:       a.UsageStatus(now),
		})
	}
	return rows
}

// collectInactiveBorrowers groups the owner's assignments by borrower,
// keeping each borrower's most recent use, then returns those whose most
// recent use is absent or strictly older than the window. Borrowers come
// back in first-seen scan order, one entry per user regardless of how many
// of the owner's tools they hold.
func collectInactiveBorrowers(assignments []*model.Assignment, now time.Time) []Borrower {
	type usage struct {
		borrower   Borrower
		mostRecent *time.Time
	}

	order := make([]string, 0, len(assignments))
	byUser := make(map[string]*usage, len(assignments))

	for _, a := range assignments {
		u, seen := byUser[a.UserID]
		if !seen {
			u = &usage{borrower: Borrower{UserID: a.UserID, Email: a.UserEmail}}
			byUser[a.UserID] = u
			order = append(order, a.UserID)
		}
		if a.LastUsedAt != nil && (u.mostRecent == nil || a.LastUsedAt.After(*u.mostRecent)) {
			u.mostRecent = a.LastUsedAt
		}
	}

	threshold := model.DateOf(now).AddDate(0, 0, -model.InactivityWindowDays)

	inactive := make([]Borrower, 0, len(order))
	for _, userID := range order {
		u := byUser[userID]
		if u.mostRecent == nil || model.DateOf(*u.mostRecent).Before(threshold) {
			inactive = append(inactive, u.borrower)
		}
	}

	return inactive
}
