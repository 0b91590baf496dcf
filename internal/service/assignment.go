package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/toolkeep/toolkeep/internal/metrics"
	"github.com/toolkeep/toolkeep/internal/model"
	"github.com/toolkeep/toolkeep/internal/repository"
)

// AssignmentService manages the ledger of who borrows which tool.
type AssignmentService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
	now     func() time.Time
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(repo *repository.Repository, recorder metrics.Recorder) *AssignmentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AssignmentService{
		repo:    repo,
		metrics: recorder,
		now:     time.Now,
	}
}

// Assign lends a tool to a user. Only the tool's owner may assign, the
// target user must exist, and a pair can be assigned at most once.
func (s *AssignmentService) Assign(ctx context.Context, toolID, callerID, targetUserID string) (*model.Assignment, error) {
	tool, err := requireOwnedTool(ctx, s.repo, toolID, callerID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	assignment := &model.Assignment{
		ID:         ulid.Make().String(),
		ToolID:     tool.ID,
		UserID:     user.ID,
		AssignedAt: s.now().UTC(),
		UserEmail:  user.Email,
	}

	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrAlreadyAssigned) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	s.metrics.IncAssignmentCreated()

	return assignment, nil
}

// ListToolUsers returns the borrowers of a tool the caller owns.
func (s *AssignmentService) ListToolUsers(ctx context.Context, toolID, callerID string) ([]*model.User, error) {
	if _, err := requireOwnedTool(ctx, s.repo, toolID, callerID); err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignmentsByTool(ctx, toolID)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(assignments))
	for _, a := range assignments {
		users = append(users, &model.User{ID: a.UserID, Email: a.UserEmail})
	}

	return users, nil
}

// RecordUsage marks a tool as used today by the caller. Only an assigned
// borrower may record usage, so an unassigned caller is rejected outright
// whether or not the tool exists. Usage is tracked at date granularity,
// which makes same-day calls idempotent.
func (s *AssignmentService) RecordUsage(ctx context.Context, toolID, callerID string) error {
	today := model.DateOf(s.now())

	if err := s.repo.SetLastUsed(ctx, toolID, callerID, today); err != nil {
		if errors.Is(err, repository.ErrNotAssigned) {
			return ErrNotAssigned
		}
		return fmt.Errorf("record usage: %w", err)
	}

	s.metrics.IncUsageRecorded()

	return nil
}
