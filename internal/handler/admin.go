package handler

import (
	"context"
	"net/http"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// ResetRunner runs ledger reconciliation on demand and reports its schedule
type ResetRunner interface {
	RunNow(ctx context.Context) (int, error)
	Status() domain.ResetStatus
}

// AdminHunterHandler handles admin endpoints for hunter ledger resets
type AdminHunterHandler struct {
	resets ResetRunner
}

// NewAdminHunterHandler creates a new AdminHunterHandler
func NewAdminHunterHandler(resets ResetRunner) *AdminHunterHandler {
	return &AdminHunterHandler{resets: resets}
}

// HandleReconcile reconciles every known hunter against the current reset boundaries
// POST /api/v1/admin/hunter/reconcile
// @Summary Reconcile all hunters
// @Description Applies pending daily/weekly resets to every stored and cached hunter
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin/hunter/reconcile [post]
func (h *AdminHunterHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("Manual hunter reconcile triggered")

	reset, err := h.resets.RunNow(r.Context())
	if err != nil {
		respondServiceError(w, r, OpReconcile, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       MsgReconcileComplete,
		"hunters_reset": reset,
	})
}

// HandleGetResetStatus returns the reset schedule and the outcome of the last run
// GET /api/v1/admin/hunter/reset-status
// @Summary Get hunter reset status
// @Tags admin
// @Produce json
// @Success 200 {object} domain.ResetStatus
// @Router /admin/hunter/reset-status [get]
func (h *AdminHunterHandler) HandleGetResetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.resets.Status())
}
