package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/toolkeep/toolkeep/internal/model"
)

// Common errors for assignment ledger operations.
var (
	ErrAlreadyAssigned = errors.New("user already assigned to tool")
	ErrNotAssigned     = errors.New("user is not assigned to tool")
)

// CreateAssignment inserts a new assignment into the ledger.
// The unique constraint on (tool_id, user_id) resolves concurrent assigns:
// the loser gets ErrAlreadyAssigned instead of a duplicate row.
func (r *Repository) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	query := `
		INSERT INTO tool_assignments (id, tool_id, user_id, assigned_at, last_used_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.ToolID,
		a.UserID,
		a.AssignedAt,
		a.LastUsedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// GetAssignment retrieves the assignment for a (tool, user) pair.
func (r *Repository) GetAssignment(ctx context.Context, toolID, userID string) (*model.Assignment, error) {
	query := `
		SELECT id, tool_id, user_id, assigned_at, last_used_at
		FROM tool_assignments
		WHERE tool_id = $1 AND user_id = $2
	`

	var a model.Assignment
	err := r.pool.QueryRow(ctx, query, toolID, userID).Scan(
		&a.ID,
		&a.ToolID,
		&a.UserID,
		&a.AssignedAt,
		&a.LastUsedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotAssigned
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return &a, nil
}

// ListAssignmentsByTool retrieves a tool's assignments with borrower emails,
// in ledger insertion order.
func (r *Repository) ListAssignmentsByTool(ctx context.Context, toolID string) ([]*model.Assignment, error) {
	query := `
		SELECT a.id, a.tool_id, a.user_id, a.assigned_at, a.last_used_at, u.email
		FROM tool_assignments a
		JOIN users u ON u.id = a.user_id
		WHERE a.tool_id = $1
		ORDER BY a.assigned_at ASC, a.id ASC
	`

	return r.queryAssignments(ctx, query, toolID)
}

// ListAssignmentsByOwner retrieves every assignment across all tools owned by
// the given user, with borrower emails. Feeds the cross-tool inactivity
// report; a single join replaces per-tool navigation.
func (r *Repository) ListAssignmentsByOwner(ctx context.Context, ownerID string) ([]*model.Assignment, error) {
	query := `
		SELECT a.id, a.tool_id, a.user_id, a.assigned_at, a.last_used_at, u.email
		FROM tool_assignments a
		JOIN tools t ON t.id = a.tool_id
		JOIN users u ON u.id = a.user_id
		WHERE t.owner_id = $1
		ORDER BY a.assigned_at ASC, a.id ASC
	`

	return r.queryAssignments(ctx, query, ownerID)
}

// ListAssignmentsByUser retrieves every assignment held by one borrower.
func (r *Repository) ListAssignmentsByUser(ctx context.Context, userID string) ([]*model.Assignment, error) {
	query := `
		SELECT a.id, a.tool_id, a.user_id, a.assigned_at, a.last_used_at, u.email
		FROM tool_assignments a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.assigned_at ASC, a.id ASC
	`

	return r.queryAssignments(ctx, query, userID)
}

// SetLastUsed records a usage date on an existing assignment and refreshes
// the tool's own last_used marker in the same transaction.
// Returns ErrNotAssigned when no assignment exists for the pair.
func (r *Repository) SetLastUsed(ctx context.Context, toolID, userID string, usedOn time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE tool_assignments
		SET last_used_at = $3
		WHERE tool_id = $1 AND user_id = $2
	`, toolID, userID, usedOn)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotAssigned
	}

	if _, err := tx.Exec(ctx, `
		UPDATE tools
		SET last_used = $2
		WHERE id = $1
	`, toolID, usedOn); err != nil {
		return fmt.Errorf("failed to update tool last_used: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) queryAssignments(ctx context.Context, query string, arg any) ([]*model.Assignment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(
			&a.ID,
			&a.ToolID,
			&a.UserID,
			&a.AssignedAt,
			&a.LastUsedAt,
			&a.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
