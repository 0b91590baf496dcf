package dto

import (
	"time"

	"github.com/toolkeep/toolkeep/internal/model"
	"github.com/toolkeep/toolkeep/internal/service"
)

// CreateToolRequest represents the request body for registering a tool.
type CreateToolRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billing_cycle"`
	RenewalDate  Date    `json:"renewal_date"`
}

// UpdateToolRequest represents a partial update. Nil fields are left
// unchanged.
type UpdateToolRequest struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	BillingCycle *string  `json:"billing_cycle,omitempty"`
	RenewalDate  *Date    `json:"renewal_date,omitempty"`
}

// ToolResponse represents a tracked tool in API responses.
type ToolResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	BillingCycle string    `json:"billing_cycle"`
	RenewalDate  Date      `json:"renewal_date"`
	LastUsed     *Date     `json:"last_used,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssignUserRequest represents the request body for assigning a user to
// a tool.
type AssignUserRequest struct {
	UserID string `json:"user_id"`
}

// AssignmentResponse represents a tool assignment in API responses.
type AssignmentResponse struct {
	ID         string    `json:"id"`
	ToolID     string    `json:"tool_id"`
	UserID     string    `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// UsageRowResponse is one row of a tool's usage report.
type UsageRowResponse struct {
	Email        string `json:"email"`
	AssignedDate Date   `json:"assigned_date"`
	LastUsed     *Date  `json:"last_used"`
	Status       string `json:"status"`
}

// ToolFromModel converts a model.Tool to its API representation.
func ToolFromModel(t *model.Tool) ToolResponse {
	resp := ToolResponse{
		ID:           t.ID,
		Name:         t.Name,
		Price:        t.Price,
		BillingCycle: string(t.BillingCycle),
		RenewalDate:  NewDate(t.RenewalDate),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.LastUsed != nil {
		d := NewDate(*t.LastUsed)
		resp.LastUsed = &d
	}
	return resp
}

// ToolsFromModels converts a slice of tools.
func ToolsFromModels(tools []*model.Tool) []ToolResponse {
	out := make([]ToolResponse, 0, len(tools))
	for _, t := range tools {
		out = append(out, ToolFromModel(t))
	}
	return out
}

// AssignmentFromModel converts a model.Assignment to its API
// representation.
func AssignmentFromModel(a *model.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		ToolID:     a.ToolID,
		UserID:     a.UserID,
		AssignedAt: a.AssignedAt,
	}
}

// UsageRowsFromService converts report rows to their API representation.
func UsageRowsFromService(rows []service.UsageRow) []UsageRowResponse {
	out := make([]UsageRowResponse, 0, len(rows))
	for _, r := range rows {
		row := UsageRowResponse{
			Email:        r.Email,
			AssignedDate: NewDate(r.AssignedDate),
			Status:       string(r.Status),
		}
		if r.LastUsed != nil {
			d := NewDate(*r.LastUsed)
			row.LastUsed = &d
		}
		out = append(out, row)
	}
	return out
}
