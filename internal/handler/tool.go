package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toolkeep/toolkeep/internal/auth"
	"github.com/toolkeep/toolkeep/internal/handler/dto"
	"github.com/toolkeep/toolkeep/internal/service"
)

// ToolHandler handles HTTP requests for tool and assignment operations.
type ToolHandler struct {
	tools       *service.ToolService
	assignments *service.AssignmentService
	reports     *service.ReportService
	logger      *slog.Logger
}

// NewToolHandler creates a new ToolHandler.
func NewToolHandler(tools *service.ToolService, assignments *service.AssignmentService, reports *service.ReportService, logger *slog.Logger) *ToolHandler {
	return &ToolHandler{
		tools:       tools,
		assignments: assignments,
		reports:     reports,
		logger:      logger,
	}
}

// Create handles POST /api/v1/tools.
func (h *ToolHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	var req dto.CreateToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateToolInput{
		Name:         req.Name,
		Price:        req.Price,
		BillingCycle: req.BillingCycle,
		RenewalDate:  req.RenewalDate.Time,
		OwnerID:      callerID,
	}

	tool, err := h.tools.CreateTool(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("tool_created",
		"tool_id", tool.ID,
		"owner_id", callerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToolFromModel(tool))
}

// List handles GET /api/v1/tools.
func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	tools, err := h.tools.ListTools(r.Context(), callerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToolsFromModels(tools))
}

// Update handles PATCH /api/v1/tools/{id}.
func (h *ToolHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Tool ID is required")
		return
	}

	var req dto.UpdateToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateToolInput{
		ID:           id,
		CallerID:     auth.UserIDFromContext(r.Context()),
		Name:         req.Name,
		Price:        req.Price,
		BillingCycle: req.BillingCycle,
	}
	if req.RenewalDate != nil {
		input.RenewalDate = &req.RenewalDate.Time
	}

	tool, err := h.tools.UpdateTool(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("tool_updated", "tool_id", tool.ID)

	writeJSON(w, http.StatusOK, dto.ToolFromModel(tool))
}

// Delete handles DELETE /api/v1/tools/{id}.
func (h *ToolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Tool ID is required")
		return
	}

	if err := h.tools.DeleteTool(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("tool_deleted", "tool_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Assign handles POST /api/v1/tools/{id}/assignments.
func (h *ToolHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Tool ID is required")
		return
	}

	var req dto.AssignUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "User ID is required")
		return
	}

	assignment, err := h.assignments.Assign(r.Context(), id, auth.UserIDFromContext(r.Context()), req.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_assigned",
		"tool_id", id,
		"assignee_id", req.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.AssignmentFromModel(assignment))
}

// ListUsers handles GET /api/v1/tools/{id}/users.
func (h *ToolHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Tool ID is required")
		return
	}

	users, err := h.assignments.ListToolUsers(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserResponse{ID: u.ID, Email: u.Email})
	}
	writeJSON(w, http.StatusOK, out)
}

// RecordUsage handles POST /api/v1/tools/{id}/usage.
// The caller reports their own use of an assigned tool.
func (h *ToolHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Tool ID is required")
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	if err := h.assignments.RecordUsage(r.Context(), id, callerID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("usage_recorded",
		"tool_id", id,
		"user_id", callerID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "usage recorded"})
}

// UsageReport handles GET /api/v1/tools/{id}/usage.
func (h *ToolHandler) UsageReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Tool ID is required")
		return
	}

	rows, err := h.reports.ToolUsageReport(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UsageRowsFromService(rows))
}

// handleServiceError maps service errors to HTTP responses.
func (h *ToolHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrToolNotFound):
		h.writeError(w, http.StatusNotFound, "TOOL_NOT_FOUND", "Tool not found")
	case errors.Is(err, service.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the tool owner may perform this action")
	case errors.Is(err, service.ErrNotAssigned):
		h.writeError(w, http.StatusForbidden, "NOT_ASSIGNED", "Tool is not assigned to this user")
	case errors.Is(err, service.ErrAlreadyAssigned):
		h.writeError(w, http.StatusConflict, "ALREADY_ASSIGNED", "Tool is already assigned to this user")
	case errors.Is(err, service.ErrNameRequired):
		h.writeError(w, http.StatusBadRequest, "NAME_REQUIRED", "Tool name is required")
	case errors.Is(err, service.ErrInvalidPrice):
		h.writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price must not be negative")
	case errors.Is(err, service.ErrInvalidBillingCycle):
		h.writeError(w, http.StatusBadRequest, "INVALID_BILLING_CYCLE", "Billing cycle must be monthly or annually")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *ToolHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
