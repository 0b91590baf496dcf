package handler

import (
	"log/slog"
	"net/http"

	"github.com/toolkeep/toolkeep/internal/auth"
	"github.com/toolkeep/toolkeep/internal/handler/dto"
	"github.com/toolkeep/toolkeep/internal/service"
)

// ReportHandler handles HTTP requests for cross-tool reports.
type ReportHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

// InactiveBorrowers handles GET /api/v1/borrowers/inactive.
// It lists every distinct user across the caller's tools who has not
// used any of them within the inactivity window.
func (h *ReportHandler) InactiveBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.reports.InactiveBorrowers(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	out := make([]dto.UserResponse, 0, len(borrowers))
	for _, b := range borrowers {
		out = append(out, dto.UserResponse{ID: b.UserID, Email: b.Email})
	}
	writeJSON(w, http.StatusOK, out)
}
