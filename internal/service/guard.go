package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/toolkeep/toolkeep/internal/model"
	"github.com/toolkeep/toolkeep/internal/repository"
)

// requireOwnedTool loads a tool and verifies the caller owns it.
// Absence is reported before authorization, so a missing tool is always
// ErrToolNotFound regardless of who asks.
func requireOwnedTool(ctx context.Context, repo *repository.Repository, toolID, callerID string) (*model.Tool, error) {
	tool, err := repo.GetToolByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, repository.ErrToolNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("load tool: %w", err)
	}

	if !tool.OwnedBy(callerID) {
		return nil, ErrNotOwner
	}

	return tool, nil
}
