package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/http/middleware"
	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

type AdminLeadHandler struct {
	leadRepo entity.LeadRepositoryInterface
	updateUC *usecase.UpdateLeadUseCase
}

func NewAdminLeadHandler(leadRepo entity.LeadRepositoryInterface, updateUC *usecase.UpdateLeadUseCase) *AdminLeadHandler {
	return &AdminLeadHandler{
		leadRepo: leadRepo,
		updateUC: updateUC,
	}
}

type listLeadsResponse struct {
	Leads []entity.Lead `json:"leads"`
	Total int64         `json:"total"`
	Page  int           `json:"page,omitempty"`
	Limit int           `json:"limit,omitempty"`
}

// HandleList (GET /api/admin/leads?status=&priority=&source=&page=&limit=&all=)
func (h *AdminLeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := entity.LeadFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Source:   q.Get("source"),
		All:      q.Get("all") == "true",
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	leads, total, err := h.leadRepo.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if leads == nil {
		leads = []entity.Lead{}
	}

	resp := listLeadsResponse{Leads: leads, Total: total}
	if !filter.All {
		resp.Page = filter.Page
		resp.Limit = filter.Limit
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet (GET /api/admin/leads/{id})
func (h *AdminLeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leadRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleUpdate (PUT /api/admin/leads/{id}) runs the lifecycle
// controller; when the update is the transition into "completed" the
// response carries the freshly minted review link for the operator to
// share out-of-band.
func (h *AdminLeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	body := json.NewDecoder(r.Body)
	if err := body.Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}
	if _, ok := raw["id"]; ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "id cannot be updated"})
		return
	}
	if _, ok := raw["_id"]; ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "id cannot be updated"})
		return
	}

	var patch entity.LeadPatch
	if err := decodePatch(raw, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	output, err := h.updateUC.Execute(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	if output.ReviewLink != "" {
		middleware.RecordTokenMinted()
	}

	writeJSON(w, http.StatusOK, output)
}

func decodePatch(raw map[string]json.RawMessage, patch *entity.LeadPatch) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, patch)
}
