package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/toolkeep/toolkeep/internal/metrics"
	"github.com/toolkeep/toolkeep/internal/model"
	"github.com/toolkeep/toolkeep/internal/repository"
)

// ToolService handles tool CRUD on behalf of owners.
type ToolService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewToolService creates a new ToolService.
func NewToolService(repo *repository.Repository, recorder metrics.Recorder) *ToolService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ToolService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateToolInput defines input for creating a tool.
type CreateToolInput struct {
	Name         string
	Price        float64
	BillingCycle string
	RenewalDate  time.Time
	OwnerID      string
}

// CreateTool creates a new tool owned by the caller.
func (s *ToolService) CreateTool(ctx context.Context, input CreateToolInput) (*model.Tool, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	cycle := model.BillingCycle(input.BillingCycle)
	if !cycle.IsValid() {
		return nil, ErrInvalidBillingCycle
	}

	now := time.Now().UTC()
	tool := &model.Tool{
		ID:           ulid.Make().String(),
		Name:         input.Name,
		Price:        input.Price,
		BillingCycle: cycle,
		RenewalDate:  model.DateOf(input.RenewalDate),
		OwnerID:      input.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateTool(ctx, tool); err != nil {
		return nil, fmt.Errorf("create tool: %w", err)
	}

	s.metrics.IncToolCreated()

	return tool, nil
}

// ListTools retrieves the caller's tools in insertion order.
func (s *ToolService) ListTools(ctx context.Context, ownerID string) ([]*model.Tool, error) {
	return s.repo.ListToolsByOwner(ctx, ownerID)
}

// UpdateToolInput defines a partial update. Nil fields are left unchanged;
// each present field is merged explicitly onto the stored tool.
type UpdateToolInput struct {
	ID           string
	CallerID     string
	Name         *string
	Price        *float64
	BillingCycle *string
	RenewalDate  *time.Time
}

// validateUpdate checks each present field of a partial update.
func validateUpdate(input UpdateToolInput) error {
	if input.Name != nil && *input.Name == "" {
		return ErrNameRequired
	}
	if input.Price != nil && *input.Price < 0 {
		return ErrInvalidPrice
	}
	if input.BillingCycle != nil && !model.BillingCycle(*input.BillingCycle).IsValid() {
		return ErrInvalidBillingCycle
	}
	return nil
}

// UpdateTool applies a partial update to a tool the caller owns.
func (s *ToolService) UpdateTool(ctx context.Context, input UpdateToolInput) (*model.Tool, error) {
	tool, err := requireOwnedTool(ctx, s.repo, input.ID, input.CallerID)
	if err != nil {
		return nil, err
	}

	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	if input.Name != nil {
		tool.Name = *input.Name
	}
	if input.Price != nil {
		tool.Price = *input.Price
	}
	if input.BillingCycle != nil {
		tool.BillingCycle = model.BillingCycle(*input.BillingCycle)
	}
	if input.RenewalDate != nil {
		tool.RenewalDate = model.DateOf(*input.RenewalDate)
	}

	tool.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTool(ctx, tool); err != nil {
		return nil, fmt.Errorf("update tool: %w", err)
	}

	s.metrics.IncToolUpdated()

	return tool, nil
}

// DeleteTool removes a tool the caller owns, cascading to its assignments.
func (s *ToolService) DeleteTool(ctx context.Context, toolID, callerID string) error {
	if _, err := requireOwnedTool(ctx, s.repo, toolID, callerID); err != nil {
		return err
	}

	if err := s.repo.DeleteTool(ctx, toolID); err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}

	s.metrics.IncToolDeleted()

	return nil
}
