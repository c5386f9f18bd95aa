package handlers

import (
	"net/http"

	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Handle (GET /api/admin/dashboard)
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	output, err := h.dashboardUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
