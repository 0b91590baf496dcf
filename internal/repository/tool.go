package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/toolkeep/toolkeep/internal/model"
)

// Common errors for tool repository operations.
var (
	ErrToolNotFound = errors.New("tool not found")
)

// CreateTool inserts a new tool into the database.
func (r *Repository) CreateTool(ctx context.Context, tool *model.Tool) error {
	query := `
		INSERT INTO tools (id, name, price, billing_cycle, renewal_date, owner_id, last_used, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		tool.ID,
		tool.Name,
		tool.Price,
		tool.BillingCycle,
		tool.RenewalDate,
		tool.OwnerID,
		tool.LastUsed,
		tool.CreatedAt,
		tool.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create tool: %w", err)
	}

	return nil
}

// GetToolByID retrieves a tool by its ID.
func (r *Repository) GetToolByID(ctx context.Context, id string) (*model.Tool, error) {
	query := `
		SELECT id, name, price, billing_cycle, renewal_date, owner_id, last_used, created_at, updated_at
		FROM tools
		WHERE id = $1
	`

	tool, err := scanTool(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to get tool by ID: %w", err)
	}

	return tool, nil
}

// ListToolsByOwner retrieves all tools owned by a user in insertion order.
func (r *Repository) ListToolsByOwner(ctx context.Context, ownerID string) ([]*model.Tool, error) {
	query := `
		SELECT id, name, price, billing_cycle, renewal_date, owner_id, last_used, created_at, updated_at
		FROM tools
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer rows.Close()

	var tools []*model.Tool
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, tool)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tools: %w", err)
	}

	return tools, nil
}

// UpdateTool updates a tool's mutable fields.
func (r *Repository) UpdateTool(ctx context.Context, tool *model.Tool) error {
	query := `
		UPDATE tools
		SET name = $2, price = $3, billing_cycle = $4, renewal_date = $5, last_used = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		tool.ID,
		tool.Name,
		tool.Price,
		tool.BillingCycle,
		tool.RenewalDate,
		tool.LastUsed,
		tool.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update tool: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrToolNotFound
	}

	return nil
}

// DeleteTool removes a tool. Its assignments are removed by the foreign key
// cascade in the same transaction, so the delete is atomic.
func (r *Repository) DeleteTool(ctx context.Context, id string) error {
	query := `DELETE FROM tools WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrToolNotFound
	}

	return nil
}

// scanTool scans a row into a Tool model.
func scanTool(row pgx.Row) (*model.Tool, error) {
	var tool model.Tool
	err := row.Scan(
		&tool.ID,
		&tool.Name,
		&tool.Price,
		&tool.BillingCycle,
		&tool.RenewalDate,
		&tool.OwnerID,
		&tool.LastUsed,
		&tool.CreatedAt,
		&tool.UpdatedAt,
	)
	return &tool, err
}
